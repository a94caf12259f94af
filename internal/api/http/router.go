package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/claims-service/internal/api/http/handlers"
	"github.com/spec-kit/claims-service/internal/auth"
	"github.com/spec-kit/claims-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Claims         *handlers.ClaimsHandler
	Reports        *handlers.ReportsHandler
	Projects       *handlers.ProjectsHandler
	Areas          *handlers.AreasHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	authProtected.Get("/me", cfg.Users.Me)
	authProtected.Post("/password/change", cfg.Users.ChangePassword)

	staffOnly := []domain.Role{domain.RoleUser, domain.RoleAuditor, domain.RoleAdmin}

	claims := app.Group("/claims", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	claims.Post("", cfg.Claims.Create)
	claims.Get("", cfg.Claims.List)
	claims.Get("/:id", cfg.Claims.Get)
	claims.Get("/:id/history", cfg.Claims.History)
	claims.Post("/:id/transitions", auth.RequireRole(staffOnly...), cfg.Claims.Transition)
	claims.Post("/:id/messages", cfg.Claims.PostMessage)
	claims.Get("/:id/messages", cfg.Claims.ListMessages)
	claims.Post("/:id/attachments", cfg.Claims.Attach)
	claims.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Claims.Delete)

	reports := app.Group("/reports", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	reports.Get("", cfg.Reports.Bundle)
	reports.Get("/claims-per-month", cfg.Reports.ClaimsPerMonth)
	reports.Get("/status-distribution", cfg.Reports.StatusDistribution)
	reports.Get("/avg-resolution-by-type", cfg.Reports.AvgResolutionByType)
	reports.Get("/workload-by-area", cfg.Reports.WorkloadByArea)
	reports.Get("/workload-by-responsible", cfg.Reports.WorkloadByResponsible)
	reports.Get("/common-claim-types", cfg.Reports.CommonClaimTypes)

	projects := app.Group("/projects", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	projects.Post("", cfg.Projects.Create)
	projects.Get("", cfg.Projects.List)
	projects.Get("/:id", cfg.Projects.Get)
	projects.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Projects.Deactivate)

	areas := app.Group("/areas", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	areas.Post("", auth.RequireRole(domain.RoleAdmin), cfg.Areas.Create)
	areas.Get("", cfg.Areas.List)
	areas.Post("/:id/subareas", auth.RequireRole(domain.RoleAdmin), cfg.Areas.CreateSubarea)
	areas.Get("/:id/subareas", cfg.Areas.ListSubareas)
}
