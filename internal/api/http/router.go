package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/flash"
	"github.com/spec-kit/complaint-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Home       *handlers.HomeHandler
	Auth       *handlers.AuthHandler
	Complaints *handlers.ComplaintsHandler
	Sessions   *auth.SessionManager
	Flasher    *flash.Flasher
	Guard      *auth.Guard
	Metrics    *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Every admin route goes through the same
// RequireAdmin guard.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	web := app.Group("", cfg.Flasher.Middleware(), cfg.Sessions.Handle)
	authenticated := cfg.Guard.RequireAuthenticated()
	admin := cfg.Guard.RequireAdmin()

	web.Get("/", cfg.Home.Index)

	authGroup := web.Group("/auth")
	authGroup.Get("/login", cfg.Auth.LoginForm)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/register", cfg.Auth.RegisterForm)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/logout", authenticated, cfg.Auth.Logout)

	complaints := web.Group("/complaints", authenticated)
	complaints.Get("/add", cfg.Complaints.AddForm)
	complaints.Post("/add", cfg.Complaints.Submit)
	complaints.Get("/my-complaints", cfg.Complaints.MyComplaints)
	complaints.Get("/all", admin, cfg.Complaints.AllOpen)
	complaints.Get("/resolved", admin, cfg.Complaints.Resolved)
	complaints.Post("/update/:id", admin, cfg.Complaints.UpdateByPath)
	complaints.Post("/update-status", admin, cfg.Complaints.UpdateByBody)
}
