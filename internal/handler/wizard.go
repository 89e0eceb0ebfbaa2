package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/qairline/booking-gateway/internal/airline"
	"github.com/qairline/booking-gateway/internal/booking"
	"github.com/qairline/booking-gateway/internal/draft"
	"github.com/qairline/booking-gateway/internal/model"
)

// WizardHandler exposes the booking wizard over HTTP.  Every route
// assumes SessionAuth already ran; the session id from the context
// plus the flight id in the path key the caller's draft.  The wizard
// itself is rebuilt from the draft on every request, so the handlers
// stay stateless.
type WizardHandler struct {
	Backend booking.Backend
	Drafts  draft.Store
	Events  booking.Publisher
}

// NewWizardHandler constructs a WizardHandler.  Backend and draft
// store must be non-nil; the event publisher may be nil to disable
// booking.confirmed events.
func NewWizardHandler(backend booking.Backend, drafts draft.Store, events booking.Publisher) *WizardHandler {
	if backend == nil || drafts == nil {
		panic("nil dependency passed to NewWizardHandler")
	}
	return &WizardHandler{Backend: backend, Drafts: drafts, Events: events}
}

func sessionID(c echo.Context) (string, error) {
	sid, _ := c.Get("session_id").(string)
	if sid == "" {
		return "", errors.New("no session")
	}
	return sid, nil
}

// wizardView is the uniform response body for every wizard endpoint.
func wizardView(w *booking.Wizard) echo.Map {
	passengers := make([]echo.Map, len(w.Passengers))
	for i, p := range w.Passengers {
		passengers[i] = echo.Map{
			"email":            p.Email,
			"is_new_customer":  p.IsNewCustomer,
			"customer":         p.Customer,
			"form":             p.Form,
			"form_errors":      p.FormErrors,
			"email_resolved":   p.EmailResolved(),
			"details_resolved": p.DetailsResolved(),
		}
	}
	return echo.Map{
		"stage":       w.Stage,
		"flight":      w.Flight,
		"ticket_type": w.TicketType,
		"quantity":    w.Quantity,
		"seat_ids":    w.Selection.Seats,
		"total_price": w.TotalPrice(),
		"passengers":  passengers,
	}
}

// wizardError maps booking-package errors onto HTTP responses.  All
// of them leave the wizard interactive; nothing here is fatal to the
// session.
func wizardError(c echo.Context, err error) error {
	var (
		verr *booking.ValidationError
		lerr *booking.SelectionLimitError
		ierr *booking.IncompleteSelectionError
		serr *booking.StaleSeatError
		perr *booking.PassengerIndexError
		aerr *airline.APIError
	)
	switch {
	case errors.As(err, &perr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": perr.Error()})
	case errors.As(err, &verr):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": verr.Error(), "fields": verr.Fields})
	case errors.As(err, &lerr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": lerr.Error(), "limit": lerr.Quantity})
	case errors.As(err, &ierr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ierr.Error()})
	case errors.As(err, &serr):
		return c.JSON(http.StatusConflict, echo.Map{"error": serr.Error(), "stale_seats": serr.Seats})
	case errors.Is(err, booking.ErrSeatBooked):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrBusy):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrWrongStage):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.As(err, &aerr):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": aerr.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking operation failed"})
	}
}

// load rebuilds the wizard for the session and the flight id in the
// path.  It returns nil when no draft exists.
func (h *WizardHandler) load(c echo.Context, sid string) (*booking.Wizard, error) {
	d, err := h.Drafts.Load(c.Request().Context(), sid, c.Param("flightId"))
	if err != nil || d == nil {
		return nil, err
	}
	return booking.Resume(h.Backend, h.Drafts, h.Events, sid, d), nil
}

// Start handles POST /v1/bookings.  The body carries the flight
// snapshot, ticket type and quantity from the listing page.  When a
// draft already exists for this session and flight it is resumed
// instead, which is how a reload mid-wizard picks up where it left
// off.
func (h *WizardHandler) Start(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Flight     model.Flight     `json:"flight"`
		TicketType model.TicketType `json:"ticket_type"`
		Quantity   int              `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Flight.ID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "flight is required"})
	}

	ctx := c.Request().Context()
	d, err := h.Drafts.Load(ctx, sid, body.Flight.ID)
	if err != nil {
		// Fail closed: starting fresh here would overwrite a draft that
		// may still exist behind a transient store error.
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking draft"})
	}
	if d != nil {
		w := booking.Resume(h.Backend, h.Drafts, h.Events, sid, d)
		return c.JSON(http.StatusOK, wizardView(w))
	}

	w, err := booking.New(ctx, h.Backend, h.Drafts, h.Events, sid, body.Flight, body.TicketType, body.Quantity)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, wizardView(w))
}

// Get handles GET /v1/bookings/:flightId.
func (h *WizardHandler) Get(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	w, err := h.load(c, sid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking draft"})
	}
	if w == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no booking in progress for this flight"})
	}
	return c.JSON(http.StatusOK, wizardView(w))
}

// ResolveEmail handles POST /v1/bookings/:flightId/passengers/:idx/email.
func (h *WizardHandler) ResolveEmail(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil || idx < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid passenger index"})
	}
	var body struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	w, err := h.load(c, sid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking draft"})
	}
	if w == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no booking in progress for this flight"})
	}
	if err := w.ResolveEmail(c.Request().Context(), idx, body.Email); err != nil {
		return wizardError(c, err)
	}
	return c.JSON(http.StatusOK, wizardView(w))
}

// SubmitDetails handles POST /v1/bookings/:flightId/passengers/:idx/details.
func (h *WizardHandler) SubmitDetails(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil || idx < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid passenger index"})
	}
	var form model.PassengerForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	w, err := h.load(c, sid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking draft"})
	}
	if w == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no booking in progress for this flight"})
	}
	if err := w.SubmitDetails(c.Request().Context(), idx, form); err != nil {
		return wizardError(c, err)
	}
	return c.JSON(http.StatusOK, wizardView(w))
}

// ToggleSeat handles POST /v1/bookings/:flightId/seats/toggle.  The
// body is the clicked grid cell.
func (h *WizardHandler) ToggleSeat(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var seat model.Seat
	if err := c.Bind(&seat); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if seat.SeatNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_number is required"})
	}
	w, err := h.load(c, sid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking draft"})
	}
	if w == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no booking in progress for this flight"})
	}
	if err := w.ToggleSeat(c.Request().Context(), seat); err != nil {
		return wizardError(c, err)
	}
	return c.JSON(http.StatusOK, wizardView(w))
}

// ConfirmSeats handles POST /v1/bookings/:flightId/seats/confirm.
func (h *WizardHandler) ConfirmSeats(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	w, err := h.load(c, sid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking draft"})
	}
	if w == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no booking in progress for this flight"})
	}
	if err := w.ConfirmSeats(c.Request().Context()); err != nil {
		return wizardError(c, err)
	}
	return c.JSON(http.StatusOK, wizardView(w))
}

// Confirm handles POST /v1/bookings/:flightId/confirm: the final
// submission with the stale-seat reconciliation check.
func (h *WizardHandler) Confirm(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	w, err := h.load(c, sid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking draft"})
	}
	if w == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no booking in progress for this flight"})
	}
	result, err := w.Confirm(c.Request().Context())
	if err != nil {
		return wizardError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"stage":       w.Stage,
		"tickets":     result.Tickets,
		"total_price": result.TotalPrice,
	})
}

// Cancel handles DELETE /v1/bookings/:flightId.  It discards the
// draft so the next start for this flight begins fresh.
func (h *WizardHandler) Cancel(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := h.Drafts.Clear(c.Request().Context(), sid, c.Param("flightId")); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to discard booking draft"})
	}
	return c.NoContent(http.StatusNoContent)
}
