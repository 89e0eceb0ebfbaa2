package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/qairline/booking-gateway/internal/utils"
)

// SessionAuth returns an Echo middleware that validates a Bearer
// booking-session token and injects the session id into the request
// context.  Sessions are anonymous resume handles, not customer
// authentication: the id keys the caller's drafts and nothing else.
// Handlers read it via c.Get("session_id").
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			sid, err := utils.ParseSessionID(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session token"})
			}

			c.Set("session_id", sid)
			return next(c)
		}
	}
}
