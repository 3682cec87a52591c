package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/metering-service/internal/api/http/handlers"
	"github.com/spec-kit/metering-service/internal/auth"
	"github.com/spec-kit/metering-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Companies *handlers.CompaniesHandler
	Meters    *handlers.MetersHandler
	Tariffs   *handlers.TariffsHandler
	Invoices  *handlers.InvoicesHandler
	Employees *handlers.EmployeesHandler
	Gate      *auth.Gate
}

// RegisterRoutes wires HTTP routes. The gate runs on every request; its
// allow-list lets the public paths through.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/password/change", cfg.Auth.ChangePassword)

	companies := api.Group("/companies")
	companies.Post("", cfg.Companies.Create)
	companies.Get("", cfg.Companies.List)
	companies.Get("/:id", cfg.Companies.Get)
	companies.Put("/:id", cfg.Companies.Update)
	companies.Delete("/:id", cfg.Companies.Delete)
	companies.Get("/:id/meters", cfg.Meters.ListByCompany)
	companies.Get("/:id/invoices", cfg.Invoices.ListByCompany)

	meters := api.Group("/meters")
	meters.Post("", cfg.Meters.Create)
	meters.Get("/:id", cfg.Meters.Get)
	meters.Put("/:id", cfg.Meters.Update)
	meters.Post("/:id/readings", cfg.Meters.RecordReading)
	meters.Get("/:id/readings", cfg.Meters.ListReadings)

	tariffs := api.Group("/tariffs")
	tariffs.Post("", cfg.Tariffs.Create)
	tariffs.Get("", cfg.Tariffs.List)
	tariffs.Get("/:id", cfg.Tariffs.Get)
	tariffs.Put("/:id", cfg.Tariffs.Update)

	invoices := api.Group("/invoices")
	invoices.Post("", cfg.Invoices.Issue)
	invoices.Get("/:id", cfg.Invoices.Get)
	invoices.Post("/:id/pay", cfg.Invoices.MarkPaid)

	employees := api.Group("/employees", auth.RequireRole(domain.RoleAdmin))
	employees.Post("", cfg.Employees.Create)
	employees.Get("", cfg.Employees.List)
	employees.Post("/:id/deactivate", cfg.Employees.Deactivate)
}
