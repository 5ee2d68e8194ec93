package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-admin/internal/api/http/handlers"
	"github.com/spec-kit/ticket-admin/internal/auth"
)

// ResourceRegistrar mounts one collection's CRUD routes. Satisfied by every
// handlers.ResourcesHandler instantiation.
type ResourceRegistrar interface {
	Register(router fiber.Router)
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Resources      []ResourceRegistrar
	AuthMiddleware *auth.AuthMiddleware
	LoginLimiter   *RateLimiter
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.LoginLimiter.Handle, cfg.Auth.Register)
	authGroup.Post("/login", cfg.LoginLimiter.Handle, cfg.Auth.Login)
	authGroup.Get("/verify", cfg.Auth.Verify)

	protected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/password/change", cfg.Auth.ChangePassword)
	protected.Put("/profile", cfg.Auth.UpdateProfile)

	for _, resource := range cfg.Resources {
		resource.Register(app)
	}
}
