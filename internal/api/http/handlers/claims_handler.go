package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/claims-service/internal/api/dto"
	"github.com/spec-kit/claims-service/internal/auth"
	"github.com/spec-kit/claims-service/internal/domain"
	"github.com/spec-kit/claims-service/internal/service"
)

// ClaimsHandler exposes claim lifecycle endpoints.
type ClaimsHandler struct {
	claims *service.ClaimService
}

// NewClaimsHandler constructs handler.
func NewClaimsHandler(claims *service.ClaimService) *ClaimsHandler {
	return &ClaimsHandler{claims: claims}
}

// Create handles POST /claims.
func (h *ClaimsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.ClaimCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ProjectID == "" {
		return fiber.NewError(http.StatusBadRequest, "project_id required")
	}

	view, err := h.claims.CreateClaim(c.UserContext(), principal.User.ID, service.ClaimCreateInput{
		Description: req.Description,
		ProjectID:   req.ProjectID,
		Priority:    domain.ClaimPriority(req.Priority),
		Criticality: domain.ClaimCriticality(req.Criticality),
		ClaimType:   domain.ClaimType(req.ClaimType),
		SubareaID:   req.SubareaID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewClaimResponse(view)})
}

// Transition handles POST /claims/:id/transitions.
func (h *ClaimsHandler) Transition(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.ClaimTransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	input := service.ClaimTransitionInput{
		SubareaID:       req.SubareaID,
		ProjectID:       req.ProjectID,
		ActionNote:      req.Action,
		FinalResolution: req.FinalResolution,
	}
	if req.Status != nil {
		status := domain.ClaimStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := domain.ClaimPriority(*req.Priority)
		input.Priority = &priority
	}
	if req.Criticality != nil {
		criticality := domain.ClaimCriticality(*req.Criticality)
		input.Criticality = &criticality
	}
	if req.ClaimType != nil {
		claimType := domain.ClaimType(*req.ClaimType)
		input.ClaimType = &claimType
	}

	view, err := h.claims.TransitionClaim(c.UserContext(), principal.User.ID, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewClaimResponse(view)})
}

// Get handles GET /claims/:id.
func (h *ClaimsHandler) Get(c *fiber.Ctx) error {
	view, err := h.claims.GetClaim(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewClaimResponse(view)})
}

// History handles GET /claims/:id/history.
func (h *ClaimsHandler) History(c *fiber.Ctx) error {
	entries, err := h.claims.GetHistory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewHistoryEntryResponses(entries)})
}

// List handles GET /claims.
func (h *ClaimsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	filter := service.ClaimListFilter{
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if v := c.Query("project_id"); v != "" {
		filter.ProjectID = &v
	}
	if v := c.Query("search"); v != "" {
		filter.SearchTerm = &v
	}
	if t, ok := parseDateQuery(c, "created_from"); ok {
		filter.CreatedFrom = &t
	}
	if t, ok := parseDateQuery(c, "created_to"); ok {
		filter.CreatedTo = &t
	}

	views, err := h.claims.ListClaims(c.UserContext(), principal.User, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewClaimResponses(views)})
}

// Delete handles DELETE /claims/:id.
func (h *ClaimsHandler) Delete(c *fiber.Ctx) error {
	if err := h.claims.DeleteClaim(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// PostMessage handles POST /claims/:id/messages.
func (h *ClaimsHandler) PostMessage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.ClaimMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Content == "" {
		return fiber.NewError(http.StatusBadRequest, "content required")
	}

	visibility := domain.MessageVisibility(req.Visibility)
	if principal.Role == domain.RoleCustomer {
		// Customers cannot write internal notes.
		visibility = domain.MessageVisibilityPublic
	}

	message, err := h.claims.PostMessage(c.UserContext(), principal.User.ID, c.Params("id"), req.Content, visibility)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewClaimMessageResponse(message)})
}

// ListMessages handles GET /claims/:id/messages.
func (h *ClaimsHandler) ListMessages(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	messages, err := h.claims.ListMessages(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewClaimMessageResponses(messages)})
}

// Attach handles POST /claims/:id/attachments.
func (h *ClaimsHandler) Attach(c *fiber.Ctx) error {
	var req dto.AttachmentsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	files := make([]service.AttachmentInput, 0, len(req.Files))
	for _, f := range req.Files {
		files = append(files, service.AttachmentInput{Name: f.Name, URL: f.URL})
	}

	attachments, err := h.claims.AttachFiles(c.UserContext(), c.Params("id"), files)
	if err != nil {
		return err
	}
	responses := make([]dto.AttachmentResponse, 0, len(attachments))
	for i := range attachments {
		responses = append(responses, dto.NewAttachmentResponse(&attachments[i]))
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": responses})
}

func parseIntQuery(c *fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDateQuery(c *fiber.Ctx, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
