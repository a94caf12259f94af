package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/claims-service/internal/api/dto"
	"github.com/spec-kit/claims-service/internal/auth"
	"github.com/spec-kit/claims-service/internal/domain"
	"github.com/spec-kit/claims-service/internal/service"
)

// ProjectsHandler exposes project directory endpoints.
type ProjectsHandler struct {
	directory *service.DirectoryService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(directory *service.DirectoryService) *ProjectsHandler {
	return &ProjectsHandler{directory: directory}
}

// Create handles POST /projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.ProjectCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Title == "" {
		return fiber.NewError(http.StatusBadRequest, "title required")
	}

	ownerID := req.OwnerID
	if principal.Role == domain.RoleCustomer {
		// Customers only register projects for themselves.
		ownerID = principal.User.ID
	}
	if ownerID == "" {
		return fiber.NewError(http.StatusBadRequest, "owner_id required")
	}

	project, err := h.directory.CreateProject(c.UserContext(), service.ProjectInput{
		Title:            req.Title,
		Description:      req.Description,
		OwnerID:          ownerID,
		ProjectType:      domain.ProjectType(req.ProjectType),
		RegistrationDate: req.RegistrationDate,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// Get handles GET /projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	project, err := h.directory.GetProject(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// List handles GET /projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	projects, err := h.directory.ListProjects(c.UserContext(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponses(projects)})
}

// Deactivate handles DELETE /projects/:id.
func (h *ProjectsHandler) Deactivate(c *fiber.Ctx) error {
	project, err := h.directory.DeactivateProject(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}
