package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/library-catalog/pkg/util"
)

const claimsKey = "auth_claims"

// AuthMiddleware validates session cookies and exposes claims to handlers.
// Claims are taken from the token as issued; a role change after login takes
// effect only once the token expires and the user signs in again.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. A missing cookie and
// a rejected token both halt the request with 401.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token := SessionToken(c)
	if token == "" {
		return apperrors.NewUnauthorized("access denied, no token provided")
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// RequireAdmin ensures the authenticated caller holds the admin claim.
// Layered after Handle.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("access denied, no token provided")
		}
		if !claims.IsAdmin {
			return apperrors.NewForbidden("admin access required")
		}
		return c.Next()
	}
}

// ClaimsFromContext retrieves the verified session claims.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
