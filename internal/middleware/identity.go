package middleware

// identity.go provides the session extraction helper shared across
// middleware files.  Rate limiting keys on the booking session when
// one is present so that several guests behind one NAT do not share
// a bucket.

import "github.com/labstack/echo/v4"

// currentSessionID returns the booking-session id stored by
// SessionAuth, or "guest" for unauthenticated browse traffic.
func currentSessionID(c echo.Context) string {
	if v := c.Get("session_id"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "guest"
}
