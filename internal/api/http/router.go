package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecompjr/company-service/internal/api/http/handlers"
	"github.com/ecompjr/company-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Companies      *handlers.CompaniesHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics)
	}

	requireAdmin := auth.RequirePrincipal()

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, requireAdmin, cfg.Auth.Me)

	companies := app.Group("/empresas", cfg.AuthMiddleware.Handle, requireAdmin)
	companies.Post("/", cfg.Companies.Create)
	companies.Get("/", cfg.Companies.List)
	companies.Get("/:id", cfg.Companies.Get)
	companies.Put("/:id", cfg.Companies.Update)
	companies.Delete("/:id", cfg.Companies.Delete)
}
