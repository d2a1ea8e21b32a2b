package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schadenscheck/admin-api/internal/model"
	"github.com/schadenscheck/admin-api/internal/utils"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	testCookie = "admin_token"
)

func newCodec(t *testing.T, ttl time.Duration) *utils.TokenCodec {
	t.Helper()
	codec, err := utils.NewTokenCodec(testSecret, ttl)
	require.NoError(t, err)
	return codec
}

func issue(t *testing.T, codec *utils.TokenCodec, p model.Principal) string {
	t.Helper()
	token, err := codec.Issue(p)
	require.NoError(t, err)
	return token
}

// echoHandler records whether the chain reached the terminal handler and
// what principal was attached at that point.
type echoHandler struct {
	called    bool
	principal model.Principal
	attached  bool
}

func (h *echoHandler) handle(c echo.Context) error {
	h.called = true
	h.principal, h.attached = Principal(c)
	return c.NoContent(http.StatusOK)
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, decorate func(*http.Request)) (*httptest.ResponseRecorder, *echoHandler) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/status", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	h := &echoHandler{}
	require.NoError(t, mw(h.handle)(c))
	return rec, h
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Error
}

func TestRequireAuth_NoToken(t *testing.T) {
	codec := newCodec(t, time.Hour)
	rec, h := doRequest(t, RequireAuth(codec, testCookie), nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication required", errorBody(t, rec))
	assert.False(t, h.called)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	codec := newCodec(t, time.Hour)
	rec, h := doRequest(t, RequireAuth(codec, testCookie), func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer garbage")
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", errorBody(t, rec))
	assert.False(t, h.called)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	expired := newCodec(t, -time.Minute)
	verifier := newCodec(t, time.Hour)
	token := issue(t, expired, model.Principal{Username: "admin1", Role: model.RoleAdmin})

	rec, h := doRequest(t, RequireAuth(verifier, testCookie), func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", errorBody(t, rec))
	assert.False(t, h.called)
}

func TestRequireAuth_ValidBearer(t *testing.T) {
	codec := newCodec(t, time.Hour)
	token := issue(t, codec, model.Principal{Username: "admin1", Role: model.RoleAdmin})

	rec, h := doRequest(t, RequireAuth(codec, testCookie), func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, h.called)
	require.True(t, h.attached)
	assert.Equal(t, model.Principal{Username: "admin1", Role: model.RoleAdmin}, h.principal)
}

func TestRequireAuth_ValidCookie(t *testing.T) {
	codec := newCodec(t, time.Hour)
	token := issue(t, codec, model.Principal{Username: "admin1", Role: model.RoleAdmin})

	rec, h := doRequest(t, RequireAuth(codec, testCookie), func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, h.called)
}

func TestRequireAuth_CookieWinsOverHeader(t *testing.T) {
	codec := newCodec(t, time.Hour)
	cookieToken := issue(t, codec, model.Principal{Username: "cookie-admin", Role: model.RoleAdmin})
	headerToken := issue(t, codec, model.Principal{Username: "header-admin", Role: model.RoleAdmin})

	_, h := doRequest(t, RequireAuth(codec, testCookie), func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: testCookie, Value: cookieToken})
		r.Header.Set("Authorization", "Bearer "+headerToken)
	})

	require.True(t, h.attached)
	assert.Equal(t, "cookie-admin", h.principal.Username)
}

func TestOptionalAuth_NeverBlocks(t *testing.T) {
	codec := newCodec(t, time.Hour)

	// No token: request proceeds without a principal.
	rec, h := doRequest(t, OptionalAuth(codec, testCookie), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, h.called)
	assert.False(t, h.attached)

	// Invalid token: still proceeds, still no principal.
	rec, h = doRequest(t, OptionalAuth(codec, testCookie), func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer garbage")
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, h.called)
	assert.False(t, h.attached)

	// Valid token: proceeds with the principal attached.
	token := issue(t, codec, model.Principal{Username: "admin1", Role: model.RoleAdmin})
	_, h = doRequest(t, OptionalAuth(codec, testCookie), func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
	assert.True(t, h.called)
	assert.True(t, h.attached)
}

func TestRequireAdmin(t *testing.T) {
	codec := newCodec(t, time.Hour)

	guard := func(next echo.HandlerFunc) echo.HandlerFunc {
		// Chain exactly as the router does: authentication, then role.
		return RequireAuth(codec, testCookie)(RequireAdmin()(next))
	}

	t.Run("non-admin role", func(t *testing.T) {
		token := issue(t, codec, model.Principal{Username: "viewer1", Role: "viewer"})
		rec, h := doRequest(t, guard, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Admin access required", errorBody(t, rec))
		assert.False(t, h.called)
	})

	t.Run("admin role", func(t *testing.T) {
		token := issue(t, codec, model.Principal{Username: "admin1", Role: model.RoleAdmin})
		rec, h := doRequest(t, guard, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, h.called)
	})

	t.Run("no principal attached", func(t *testing.T) {
		rec, h := doRequest(t, RequireAdmin(), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, h.called)
	})
}
