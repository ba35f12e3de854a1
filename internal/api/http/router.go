package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dtechsoftwares/ecclesiapro/internal/api/http/handlers"
	"github.com/dtechsoftwares/ecclesiapro/internal/auth"
	"github.com/dtechsoftwares/ecclesiapro/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Sessions          *handlers.SessionHandler
	Auth              *handlers.AuthHandler
	Navigation        *handlers.NavigationHandler
	Tenants           *handlers.TenantsHandler
	Audit             *handlers.AuditHandler
	System            *handlers.SystemHandler
	Insights          *handlers.InsightsHandler
	SessionMiddleware *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// Session creation is the only unauthenticated entry point.
	app.Post("/sessions", cfg.Sessions.Create)

	withSession := app.Group("", cfg.SessionMiddleware.Handle)
	withSession.Get("/sessions/current", cfg.Sessions.Current)

	authGroup := withSession.Group("/auth")
	authGroup.Post("/onboarding", cfg.Auth.Onboarding)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", auth.RequireAuthenticated(), cfg.Auth.Logout)

	shell := withSession.Group("", auth.RequireAuthenticated())
	shell.Post("/navigation", cfg.Navigation.Navigate)
	shell.Post("/navigation/return", auth.RequireRole(domain.RoleSuperAdmin), cfg.Navigation.Return)

	tenants := withSession.Group("/tenants", auth.RequireRole(domain.RoleSuperAdmin))
	tenants.Get("/", cfg.Tenants.List)
	tenants.Post("/", cfg.Tenants.Provision)
	tenants.Put("/:id", cfg.Tenants.Update)
	tenants.Post("/:id/select", cfg.Tenants.Select)

	auditGroup := withSession.Group("/audit", auth.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin))
	auditGroup.Get("/", cfg.Audit.List)
	auditGroup.Get("/export", cfg.Audit.Export)
	auditGroup.Delete("/", auth.RequireRole(domain.RoleSuperAdmin), cfg.Audit.Clear)

	system := withSession.Group("/system", auth.RequireRole(domain.RoleSuperAdmin))
	system.Get("/config", cfg.System.Config)
	system.Get("/metrics", cfg.System.Metrics)
	system.Post("/reset", cfg.System.Reset)

	insights := shell.Group("")
	insights.Post("/insights/generate", cfg.Insights.Generate)
	insights.Post("/messages/draft", cfg.Insights.Draft)
}
