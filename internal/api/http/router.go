package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/library-catalog/internal/api/http/handlers"
	"github.com/spec-kit/library-catalog/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Books          *handlers.BooksHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Reads on books and users are public;
// writes require a session, and account deletion requires the admin claim.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)

	books := app.Group("/books")
	books.Get("/", cfg.Books.List)
	books.Get("/:id", cfg.Books.Get)
	books.Post("/", cfg.AuthMiddleware.Handle, cfg.Books.Create)
	books.Patch("/:id", cfg.AuthMiddleware.Handle, cfg.Books.Update)
	books.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Books.Delete)

	users := app.Group("/users")
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Patch("/:id", cfg.AuthMiddleware.Handle, cfg.Users.Update)
	users.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Users.Delete)
}
