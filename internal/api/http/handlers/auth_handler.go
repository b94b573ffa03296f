package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/library-catalog/internal/api/dto"
	"github.com/spec-kit/library-catalog/internal/auth"
	"github.com/spec-kit/library-catalog/internal/service"
)

// AuthHandler exposes register, login and logout.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" {
		return fiber.NewError(http.StatusBadRequest, "username is required")
	}
	if req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "password is required")
	}

	user, err := h.auth.Register(c.UserContext(), req.Username, req.Password, req.IsAdmin)
	if err != nil {
		return err
	}

	return c.JSON(dto.FromUser(user))
}

// Login handles POST /auth/login. Missing credentials, unknown usernames and
// wrong passwords all answer 401 so the endpoint reveals nothing about which
// check failed.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusUnauthorized, "username and password are required")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusUnauthorized, "username and password are required")
	}

	user, token, _, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	auth.AttachSession(c, token, h.auth.TokenManager().TTL())
	return c.JSON(dto.LoginResponse{
		Message: "you are logged in",
		IsAdmin: user.IsAdmin,
	})
}

// Logout handles POST /auth/logout. Always succeeds; clearing an absent
// cookie is not an error.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	auth.ClearSession(c)
	return c.JSON(dto.MessageResponse{Message: "you are logged out and token has been cleared"})
}
