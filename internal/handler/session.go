package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/qairline/booking-gateway/internal/utils"
)

// SessionHandler mints anonymous booking sessions.  A session is a
// signed resume handle: it keys the caller's drafts so the wizard
// survives page reloads, and carries no customer identity.
type SessionHandler struct {
	Secret   string
	TTLHours int
}

// Create handles POST /v1/sessions.  It issues a fresh session id
// and a signed bearer token for it.
func (h *SessionHandler) Create(c echo.Context) error {
	sid := uuid.NewString()
	tok, err := utils.NewSessionToken(h.Secret, sid, h.TTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue session token"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"session_id": sid,
		"token":      tok.Token,
		"expires_at": tok.Exp.Format(time.RFC3339),
	})
}
