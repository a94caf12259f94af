package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/claims-service/internal/auth"
	"github.com/spec-kit/claims-service/internal/domain"
	"github.com/spec-kit/claims-service/internal/report"
	"github.com/spec-kit/claims-service/internal/service"
)

// ReportsHandler exposes the aggregated report views.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// Bundle handles GET /reports, producing every view in one response.
func (h *ReportsHandler) Bundle(c *fiber.Ctx) error {
	principal, filter, err := reportRequest(c)
	if err != nil {
		return err
	}
	bundle, err := h.reports.BuildBundle(c.UserContext(), principal.User, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bundle})
}

// ClaimsPerMonth handles GET /reports/claims-per-month.
func (h *ReportsHandler) ClaimsPerMonth(c *fiber.Ctx) error {
	principal, filter, err := reportRequest(c)
	if err != nil {
		return err
	}
	result, err := h.reports.ClaimsPerMonth(c.UserContext(), principal.User, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}

// StatusDistribution handles GET /reports/status-distribution.
func (h *ReportsHandler) StatusDistribution(c *fiber.Ctx) error {
	principal, filter, err := reportRequest(c)
	if err != nil {
		return err
	}
	result, err := h.reports.StatusDistribution(c.UserContext(), principal.User, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}

// AvgResolutionByType handles GET /reports/avg-resolution-by-type.
func (h *ReportsHandler) AvgResolutionByType(c *fiber.Ctx) error {
	principal, filter, err := reportRequest(c)
	if err != nil {
		return err
	}
	result, err := h.reports.AvgResolutionByType(c.UserContext(), principal.User, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}

// WorkloadByArea handles GET /reports/workload-by-area.
func (h *ReportsHandler) WorkloadByArea(c *fiber.Ctx) error {
	principal, filter, err := reportRequest(c)
	if err != nil {
		return err
	}
	result, err := h.reports.WorkloadByArea(c.UserContext(), principal.User, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}

// WorkloadByResponsible handles GET /reports/workload-by-responsible.
func (h *ReportsHandler) WorkloadByResponsible(c *fiber.Ctx) error {
	principal, filter, err := reportRequest(c)
	if err != nil {
		return err
	}
	result, err := h.reports.WorkloadByResponsible(c.UserContext(), principal.User, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}

// CommonClaimTypes handles GET /reports/common-claim-types.
func (h *ReportsHandler) CommonClaimTypes(c *fiber.Ctx) error {
	principal, filter, err := reportRequest(c)
	if err != nil {
		return err
	}
	result, err := h.reports.CommonClaimTypes(c.UserContext(), principal.User, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}

func reportRequest(c *fiber.Ctx) (*auth.Principal, report.Filter, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, report.Filter{}, fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var filter report.Filter
	if t, ok := parseDateQuery(c, "from"); ok {
		filter.From = &t
	}
	if t, ok := parseDateQuery(c, "to"); ok {
		filter.To = &t
	}
	if v := c.Query("project_id"); v != "" {
		filter.ProjectID = &v
	}
	if v := c.Query("project_ids"); v != "" {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				filter.ProjectIDs = append(filter.ProjectIDs, id)
			}
		}
	}
	if v := c.Query("customer_id"); v != "" {
		filter.CustomerID = &v
	}
	if v := c.Query("project_type"); v != "" {
		projectType := domain.ProjectType(v)
		if !projectType.IsValid() {
			return nil, report.Filter{}, fiber.NewError(http.StatusBadRequest, "invalid project_type")
		}
		filter.ProjectType = &projectType
	}
	if v := c.Query("subarea_id"); v != "" {
		filter.SubareaID = &v
	}
	if v := c.Query("responsible_user_id"); v != "" {
		filter.ResponsibleUserID = &v
	}
	if v := c.Query("claim_type"); v != "" {
		claimType := domain.ClaimType(v)
		if !claimType.IsValid() {
			return nil, report.Filter{}, fiber.NewError(http.StatusBadRequest, "invalid claim_type")
		}
		filter.ClaimType = &claimType
	}
	if v := c.Query("search"); v != "" {
		filter.Search = &v
	}
	return principal, filter, nil
}
