package handler

import (
	"net/http" // HTTP status codes and cookie primitives
	"time"     // cookie expiry derived from the token TTL

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/schadenscheck/admin-api/internal/middleware" // principal accessor
	"github.com/schadenscheck/admin-api/internal/service"    // authenticator
	"github.com/schadenscheck/admin-api/internal/utils"      // token codec
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Auth       *service.Authenticator
	Tokens     *utils.TokenCodec
	CookieName string
}

func NewAuthHandler(auth *service.Authenticator, tokens *utils.TokenCodec, cookieName string) *AuthHandler {
	return &AuthHandler{Auth: auth, Tokens: tokens, CookieName: cookieName}
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userPart struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type loginResp struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    userPart `json:"user"`
}

// Login: check credentials, mint a token, return it and set the session
// cookie.  Every failure mode on the credential side (malformed body,
// missing fields, unknown user, wrong password) collapses into one 401
// "Invalid credentials" response so the client cannot learn which part was
// wrong.  A missing field never reaches the authenticator as a success;
// the empty-field check only skips work the authenticator would fail
// anyway.  Signing errors are internal and answered generically.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil || req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Invalid credentials"})
	}

	p, ok := h.Auth.Authenticate(req.Username, req.Password)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Invalid credentials"})
	}

	token, err := h.Tokens.Issue(p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Login failed"})
	}

	// Browser clients keep the session in an HttpOnly cookie; programmatic
	// callers use the token from the body as a bearer header.  Both paths
	// hit the same guard.
	c.SetCookie(h.sessionCookie(token, h.Tokens.TTL()))

	return c.JSON(http.StatusOK, loginResp{
		Success: true,
		Token:   token,
		User:    userPart{Username: p.Username, Role: p.Role},
	})
}

// Logout: signal the client to discard the token by expiring the session
// cookie.  Tokens are stateless so there is nothing to revoke server-side;
// a copied token stays valid until its expiry.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -time.Hour))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Verify: report the principal of the current session.  Runs behind
// RequireAuth, so a missing principal here means the route was wired
// without the guard; answer as unauthenticated rather than panic.
func (h *AuthHandler) Verify(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Authentication required"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    userPart{Username: p.Username, Role: p.Role},
	})
}

// Session: whoami for pages that render for both guests and admins.  Runs
// behind OptionalAuth and always answers 200; the body says whether a
// valid session was presented.
func (h *AuthHandler) Session(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"authenticated": false})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"authenticated": true,
		"user":          userPart{Username: p.Username, Role: p.Role},
	})
}

// sessionCookie builds the session cookie with the given value and
// lifetime.  A negative lifetime expires it, which is how logout signals
// the browser to drop the session.
func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     h.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
