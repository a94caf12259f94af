package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/claims-service/internal/auth"
	"github.com/spec-kit/claims-service/internal/domain"
	"github.com/spec-kit/claims-service/internal/report"
)

func reportParserApp(got *report.Filter) *fiber.App {
	app := fiber.New()
	app.Get("/reports", func(c *fiber.Ctx) error {
		auth.StorePrincipal(c, &auth.Principal{
			User: &domain.User{ID: "admin1", Role: domain.RoleAdmin},
			Role: domain.RoleAdmin,
		})
		_, filter, err := reportRequest(c)
		if err != nil {
			return err
		}
		*got = filter
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestReportRequest_FilterDimensions(t *testing.T) {
	var got report.Filter
	app := reportParserApp(&got)

	req := httptest.NewRequest("GET",
		"/reports?customer_id=cust1&project_ids=p1,%20p2&project_id=p1&project_type=COMMERCIAL&claim_type=TECHNICAL&search=invoice", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	if got.CustomerID == nil || *got.CustomerID != "cust1" {
		t.Errorf("customer id = %v, want cust1", got.CustomerID)
	}
	if len(got.ProjectIDs) != 2 || got.ProjectIDs[0] != "p1" || got.ProjectIDs[1] != "p2" {
		t.Errorf("project ids = %v, want [p1 p2]", got.ProjectIDs)
	}
	if got.ProjectID == nil || *got.ProjectID != "p1" {
		t.Errorf("project id = %v, want p1", got.ProjectID)
	}
	if got.ProjectType == nil || *got.ProjectType != domain.ProjectTypeCommercial {
		t.Errorf("project type = %v, want COMMERCIAL", got.ProjectType)
	}
	if got.ClaimType == nil || *got.ClaimType != domain.ClaimTypeTechnical {
		t.Errorf("claim type = %v, want TECHNICAL", got.ClaimType)
	}
	if got.Search == nil || *got.Search != "invoice" {
		t.Errorf("search = %v, want invoice", got.Search)
	}
}

func TestReportRequest_RejectsUnknownEnums(t *testing.T) {
	var got report.Filter
	app := reportParserApp(&got)

	for _, target := range []string{
		"/reports?project_type=BOGUS",
		"/reports?claim_type=BOGUS",
	} {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		if err != nil {
			t.Fatalf("request %s: %v", target, err)
		}
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, resp.StatusCode)
		}
	}
}
