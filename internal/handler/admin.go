package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/schadenscheck/admin-api/internal/middleware"
	"github.com/schadenscheck/admin-api/internal/repository"
)

// AdminHandler serves the endpoints behind the admin guard.  The admin
// dashboard uses Status to render its header; everything else the
// dashboard shows comes from the static site content, not this API.
type AdminHandler struct {
	Env     string
	Creds   *repository.CredentialRepo
	Started time.Time
}

func NewAdminHandler(env string, creds *repository.CredentialRepo) *AdminHandler {
	return &AdminHandler{Env: env, Creds: creds, Started: time.Now().UTC()}
}

// Status reports basic service information for the signed-in admin:
// environment, uptime, configured account count and who is asking.
func (h *AdminHandler) Status(c echo.Context) error {
	p, _ := middleware.Principal(c)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"status": echo.Map{
			"env":            h.Env,
			"uptime_seconds": int64(time.Since(h.Started) / time.Second),
			"admin_accounts": h.Creds.Count(),
		},
		"user": userPart{Username: p.Username, Role: p.Role},
	})
}
