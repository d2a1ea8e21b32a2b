package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/schadenscheck/admin-api/internal/handler"    // handlers implementing the endpoints
	"github.com/schadenscheck/admin-api/internal/middleware" // auth guard and rate limiting
	"github.com/schadenscheck/admin-api/internal/utils"      // token codec consumed by the guard
)

// RegisterRoutes registers routes that carry no authentication at all.
// Currently it exposes only a health check used by load balancers and
// uptime monitors.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the authentication surface:
//
//	POST /api/auth/login   – credential check and token issuance (rate limited)
//	POST /api/auth/logout  – stateless logout, clears the session cookie
//	GET  /api/auth/verify  – session check, requires a valid token
//	GET  /api/session      – whoami for mixed guest/admin pages, never blocks
//
// loginLimit is the token-bucket middleware from LoginRateLimit; it applies
// only to the login route, since that is the only endpoint worth
// brute-forcing.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, codec *utils.TokenCodec, cookieName string, loginLimit echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/login", a.Login, loginLimit)
	g.POST("/logout", a.Logout)
	g.GET("/verify", a.Verify, middleware.RequireAuth(codec, cookieName))

	e.GET("/api/session", a.Session, middleware.OptionalAuth(codec, cookieName))
}

// RegisterAdmin registers the protected admin endpoints.  The whole group
// runs behind RequireAuth and RequireAdmin in that order, giving the
// guard's terminal-on-first-failure chain: missing token, then invalid
// token, then insufficient role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, codec *utils.TokenCodec, cookieName string) {
	admin := e.Group("/api/admin")
	admin.Use(middleware.RequireAuth(codec, cookieName))
	admin.Use(middleware.RequireAdmin())
	admin.GET("/status", h.Status)
}
