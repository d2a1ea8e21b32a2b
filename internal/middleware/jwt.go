package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // prefix checking for the Authorization header

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/schadenscheck/admin-api/internal/model" // principal attached to the request context
	"github.com/schadenscheck/admin-api/internal/utils" // token codec used for verification
)

// principalKey is the echo context key under which the verified principal is
// stored.  Handlers read it back through Principal().
const principalKey = "principal"

// RequireAuth returns an Echo middleware that gates a route behind a valid
// session token.  The token is extracted from the session cookie first,
// then from a bearer Authorization header, so browser sessions and
// programmatic callers pass through the same guard.  Outcomes are distinct:
// a missing token and a failed verification both yield 401 but with
// different messages, because the caller already holds (or lacks) a session
// and the distinction cannot aid credential guessing.  On success the
// principal is attached to the context and the chain continues.
func RequireAuth(codec *utils.TokenCodec, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c, cookieName)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Authentication required"})
			}
			p, ok := codec.Verify(raw)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Invalid or expired token"})
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// OptionalAuth performs the same extraction and verification as RequireAuth
// but never blocks: the principal is attached only when a token is present
// and valid, and processing continues either way.  Routes that render
// differently for signed-in admins use this mode.
func OptionalAuth(codec *utils.TokenCodec, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw := extractToken(c, cookieName); raw != "" {
				if p, ok := codec.Verify(raw); ok {
					c.Set(principalKey, p)
				}
			}
			return next(c)
		}
	}
}

// Principal returns the verified principal attached by RequireAuth or
// OptionalAuth.  ok is false when the request carries no valid session.
func Principal(c echo.Context) (model.Principal, bool) {
	p, ok := c.Get(principalKey).(model.Principal)
	return p, ok
}

// extractToken tries the configured extraction points in order: the named
// session cookie, then a "Bearer " Authorization header.  First hit wins;
// an empty result means the request carries no token at all.
func extractToken(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
