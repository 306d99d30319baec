package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/isaktapper/klaralyze/internal/api/http/handlers"
	"github.com/isaktapper/klaralyze/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Connection     *handlers.ConnectionHandler
	Dashboard      *handlers.DashboardHandler
	Import         *handlers.ImportHandler
	Session        *handlers.SessionHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle)

	api.Post("/connect/verify", cfg.Connection.Verify)

	api.Get("/session/metadata", cfg.Session.Metadata)
	api.Put("/session/metadata", cfg.Session.UpdateMetadata)

	orgs := api.Group("/orgs/:slug")
	orgs.Post("/connection", cfg.Connection.Connect)
	orgs.Get("/connection", cfg.Connection.Status)
	orgs.Delete("/connection", cfg.Connection.Disconnect)

	orgs.Get("/dashboard/overview", cfg.Dashboard.Overview)
	orgs.Get("/dashboard/resolution", cfg.Dashboard.Resolution)
	orgs.Get("/agents", cfg.Dashboard.Agents)
	orgs.Get("/groups", cfg.Dashboard.Groups)

	orgs.Post("/import", cfg.Import.Run)
}
