package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aquaflow/ticketing/internal/api/http/handlers"
	"github.com/aquaflow/ticketing/internal/auth"
	"github.com/aquaflow/ticketing/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Catalog        *handlers.CatalogHandler
	Tickets        *handlers.TicketsHandler
	Reports        *handlers.ReportsHandler
	Metrics        *handlers.MetricsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/auth/login", cfg.Auth.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/auth/me", cfg.Auth.Me)

	admin := auth.RequireRole(domain.RoleAdmin)
	adminOrReceptionist := auth.RequireRole(domain.RoleAdmin, domain.RoleReceptionist)
	adminOrScanner := auth.RequireRole(domain.RoleAdmin, domain.RoleScanner)

	protected.Get("/users", admin, cfg.Users.List)
	protected.Post("/users", admin, cfg.Users.Create)
	protected.Put("/users/:id", admin, cfg.Users.Update)
	protected.Delete("/users/:id", admin, cfg.Users.Deactivate)

	protected.Get("/categories", cfg.Catalog.ListCategories)
	protected.Post("/categories", admin, cfg.Catalog.CreateCategory)
	protected.Put("/categories/:id", admin, cfg.Catalog.UpdateCategory)
	protected.Delete("/categories/:id", admin, cfg.Catalog.DeleteCategory)

	protected.Get("/prices", cfg.Catalog.ListPrices)
	protected.Post("/prices", admin, cfg.Catalog.SetPrice)

	protected.Get("/sessions", cfg.Catalog.ListSessions)
	protected.Post("/sessions", admin, cfg.Catalog.CreateSession)
	protected.Put("/sessions/:id", admin, cfg.Catalog.UpdateSession)
	protected.Delete("/sessions/:id", admin, cfg.Catalog.DeleteSession)

	protected.Get("/packages", cfg.Catalog.ListPackages)
	protected.Post("/packages", admin, cfg.Catalog.CreatePackage)
	protected.Put("/packages/:id", admin, cfg.Catalog.UpdatePackage)
	protected.Delete("/packages/:id", admin, cfg.Catalog.DeletePackage)

	protected.Get("/locations", cfg.Catalog.ListLocations)
	protected.Post("/locations", admin, cfg.Catalog.CreateLocation)
	protected.Put("/locations/:id", admin, cfg.Catalog.UpdateLocation)
	protected.Delete("/locations/:id", admin, cfg.Catalog.DeleteLocation)

	protected.Post("/tickets/batch", adminOrReceptionist, cfg.Tickets.CreateBatch)
	protected.Post("/tickets/scan", adminOrScanner, cfg.Tickets.Scan)
	protected.Get("/tickets", cfg.Tickets.ListTickets)
	protected.Get("/tickets/:id", cfg.Tickets.GetTicket)
	protected.Get("/scan-logs", admin, cfg.Tickets.ListScanLogs)

	protected.Get("/reports/daily", admin, cfg.Reports.Daily)
	protected.Get("/reports/shift", cfg.Reports.Shift)
	protected.Get("/reports/monthly", admin, cfg.Reports.Monthly)
	protected.Get("/reports/staff-activity", admin, cfg.Reports.StaffActivity)

	protected.Get("/metrics", admin, cfg.Metrics.Snapshot)
}
