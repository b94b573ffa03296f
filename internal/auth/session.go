package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName carries the session token between requests.
const SessionCookieName = "access_token"

// AttachSession sets the session cookie on the response. The cookie lives
// exactly as long as the token it carries.
func AttachSession(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Secure:   false, // TODO: enable behind HTTPS in production deployments
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
	})
}

// SessionToken reads the session cookie. An empty result means the request
// is unauthenticated; that is a normal outcome, not an error.
func SessionToken(c *fiber.Ctx) string {
	return c.Cookies(SessionCookieName)
}

// ClearSession instructs the client to discard the session cookie
// immediately. Clearing an absent cookie is harmless.
func ClearSession(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Secure:   false,
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
	})
}
