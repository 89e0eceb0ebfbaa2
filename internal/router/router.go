package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/qairline/booking-gateway/internal/handler"    // import the handlers that implement the gateway logic
	"github.com/qairline/booking-gateway/internal/middleware" // import middleware for session auth, caching and rate limiting
)

// RegisterRoutes registers routes that do not require a booking
// session on the provided Echo instance.  Currently it exposes only
// a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems use this endpoint to verify
	// that the gateway is up.
	e.GET("/healthz", handler.Health)
}

// RegisterSessions registers the session-minting endpoint.  It is
// deliberately outside every middleware group: a client needs no
// prior state to obtain a session.
func RegisterSessions(e *echo.Echo, s *handler.SessionHandler, rl echo.MiddlewareFunc) {
	e.POST("/v1/sessions", s.Create, rl)
}

// RegisterBrowse registers the read-only browse endpoints: flight
// listing and search, seat maps, ticket classes and the reference
// collections.  All of them sit behind the Redis response cache and
// the rate limiter; none require a session.
func RegisterBrowse(e *echo.Echo, b *handler.BrowseHandler, cache, rl echo.MiddlewareFunc) {
	g := e.Group("/v1", rl, cache)
	g.GET("/flights", b.GetFlights)
	g.POST("/flights/search", b.SearchFlights)
	g.GET("/flights/:id/seat-map", b.GetSeatMap)
	g.GET("/ticket-classes", b.GetTicketClasses)
	// Reference collections are proxied through untyped; the backend
	// owns their shapes.
	g.GET("/cities", b.GetReference("cities"))
	g.GET("/airports", b.GetReference("airports"))
	g.GET("/routes", b.GetReference("routes"))
	g.GET("/airlines", b.GetReference("airlines"))
	g.GET("/aircraft", b.GetReference("aircraft"))
}

// RegisterWizard registers the booking wizard endpoints.  Every
// route requires a valid booking-session token; the SessionAuth
// middleware injects the session id the handlers key drafts on.
func RegisterWizard(e *echo.Echo, w *handler.WizardHandler, secret string, rl echo.MiddlewareFunc) {
	g := e.Group("/v1/bookings", rl)
	g.Use(middleware.SessionAuth(secret))
	g.POST("", w.Start)
	g.GET("/:flightId", w.Get)
	g.DELETE("/:flightId", w.Cancel)
	g.POST("/:flightId/passengers/:idx/email", w.ResolveEmail)
	g.POST("/:flightId/passengers/:idx/details", w.SubmitDetails)
	g.POST("/:flightId/seats/toggle", w.ToggleSeat)
	g.POST("/:flightId/seats/confirm", w.ConfirmSeats)
	g.POST("/:flightId/confirm", w.Confirm)
}
