package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context

	"github.com/schadenscheck/admin-api/internal/model" // role constant
)

// RequireAdmin returns a middleware that enforces the admin role on an
// already-authenticated request.  It assumes RequireAuth ran earlier in the
// chain and attached the principal; a request that reaches this point
// without one is treated the same as a wrong role.  The rejection is 403,
// not 401: the caller's session is valid, it just lacks the privilege.
// Admin is the only privileged role in the system, so the requirement is
// fixed rather than parameterized.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := Principal(c)
			if !ok || p.Role != model.RoleAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "Admin access required"})
			}
			return next(c)
		}
	}
}
