package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-activity-service/internal/api/http/handlers"
	"github.com/spec-kit/field-activity-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Activities     *handlers.ActivityHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/login", cfg.Auth.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Post("/log", cfg.Activities.Log)
	protected.Get("/mylogs", cfg.Activities.MyLogs)
	protected.Post("/password/change", cfg.Auth.ChangePassword)
	protected.Get("/stats", auth.RequireAdmin(), cfg.Dashboard.Stats)
}
