package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qairline/booking-gateway/internal/airline"
	"github.com/qairline/booking-gateway/internal/inventory"
	"github.com/qairline/booking-gateway/internal/model"
)

// BrowseHandler proxies read-only airline data: flight listing and
// search, seat maps rendered as complete cabin grids, ticket classes
// and reference collections.  All routes sit behind the response
// cache and the rate limiter.
type BrowseHandler struct {
	API *airline.Client
}

// NewBrowseHandler constructs a BrowseHandler.  The client must be non-nil.
func NewBrowseHandler(api *airline.Client) *BrowseHandler {
	if api == nil {
		panic("nil airline client passed to NewBrowseHandler")
	}
	return &BrowseHandler{API: api}
}

// backendError translates a failed backend call into a response that
// carries the backend's message when one was present.
func backendError(c echo.Context, err error) error {
	var apiErr *airline.APIError
	if errors.As(err, &apiErr) {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": apiErr.Error()})
	}
	return c.JSON(http.StatusBadGateway, echo.Map{"error": "airline backend unavailable"})
}

// GetFlights handles GET /v1/flights.
func (h *BrowseHandler) GetFlights(c echo.Context) error {
	flights, err := h.API.ListFlights(c.Request().Context())
	if err != nil {
		return backendError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": flights})
}

// SearchFlights handles POST /v1/flights/search.  The criteria body
// is passed through to the backend.
func (h *BrowseHandler) SearchFlights(c echo.Context) error {
	var criteria airline.SearchCriteria
	if err := c.Bind(&criteria); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	flights, err := h.API.SearchFlights(c.Request().Context(), criteria)
	if err != nil {
		return backendError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": flights})
}

// GetSeatMap handles GET /v1/flights/:id/seat-map?class=.  It fetches
// the raw seat map, normalizes it and derives the complete pickable
// grids for the requested class.  Seat entries that match no grid
// coordinate are dropped from the grids and returned as warnings.
func (h *BrowseHandler) GetSeatMap(c echo.Context) error {
	flightID := c.Param("id")
	if flightID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	class := model.ClassType(c.QueryParam("class"))
	if class == "" {
		class = model.ClassEconomy
	}
	if !class.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown ticket class"})
	}

	payload, err := h.API.SeatMap(c.Request().Context(), flightID)
	if err != nil {
		return backendError(c, err)
	}
	cabins, err := inventory.Normalize(payload, class)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "seat map format not recognized"})
	}

	var warnings []string
	grids := inventory.GenerateAll(class, cabins, func(n string) {
		warnings = append(warnings, "seat "+n+" does not match the cabin layout")
	})
	return c.JSON(http.StatusOK, echo.Map{
		"class":    class,
		"cabins":   grids,
		"warnings": warnings,
	})
}

// GetTicketClasses handles GET /v1/ticket-classes.
func (h *BrowseHandler) GetTicketClasses(c echo.Context) error {
	classes, err := h.API.TicketClasses(c.Request().Context())
	if err != nil {
		return backendError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": classes})
}

// GetReference handles the reference-data collections (cities,
// airports, routes, airlines, aircraft).  The backend payload is
// proxied through untouched.
func (h *BrowseHandler) GetReference(resource string) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, err := h.API.Reference(c.Request().Context(), resource)
		if err != nil {
			return backendError(c, err)
		}
		return c.JSONBlob(http.StatusOK, raw)
	}
}
