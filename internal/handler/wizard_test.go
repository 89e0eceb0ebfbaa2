package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/qairline/booking-gateway/internal/booking"
	"github.com/qairline/booking-gateway/internal/draft"
	"github.com/qairline/booking-gateway/internal/model"
)

// stubBackend satisfies booking.Backend for handler tests that never
// reach the backend.
type stubBackend struct{}

func (stubBackend) SeatMap(context.Context, string) (json.RawMessage, error) { return nil, nil }
func (stubBackend) CheckEmail(context.Context, string) (bool, error)         { return false, nil }
func (stubBackend) CustomerByEmail(context.Context, string) (*model.Customer, error) {
	return nil, nil
}
func (stubBackend) RegisterCustomer(context.Context, string, model.PassengerForm) (*model.Customer, error) {
	return nil, nil
}
func (stubBackend) TicketClasses(context.Context) ([]model.TicketClass, error) { return nil, nil }
func (stubBackend) BookTicket(context.Context, model.BookingRecord) (*model.Ticket, error) {
	return nil, nil
}
func (stubBackend) BookTickets(context.Context, []model.BookingRecord) ([]model.Ticket, error) {
	return nil, nil
}

// brokenStore fails every Load and records whether anything was
// written over the unreachable draft.
type brokenStore struct {
	saved bool
}

func (s *brokenStore) Load(context.Context, string, string) (*draft.Draft, error) {
	return nil, errors.New("store unreachable")
}

func (s *brokenStore) Save(context.Context, string, *draft.Draft) error {
	s.saved = true
	return nil
}

func (s *brokenStore) Clear(context.Context, string, string) error { return nil }
func (s *brokenStore) Acquire(context.Context, string, string) (bool, error) {
	return true, nil
}
func (s *brokenStore) Release(context.Context, string, string) error { return nil }

func newWizardContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session_id", "s1")
	return c, rec
}

func TestStartFailsClosedOnDraftLoadError(t *testing.T) {
	store := &brokenStore{}
	h := NewWizardHandler(stubBackend{}, store, nil)

	body := `{"flight": {"id": "fl-1", "base_price": 1000000},
	          "ticket_type": {"trip_type": "one-way", "class_type": "economy"},
	          "quantity": 1}`
	c, rec := newWizardContext(http.MethodPost, "/v1/bookings", body)

	require.NoError(t, h.Start(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.False(t, store.saved, "a failed load must not be overwritten with a fresh draft")
}

func TestWizardErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "passenger index out of range is a client error",
			err:        &booking.PassengerIndexError{Index: 5, Count: 2},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate submission conflicts",
			err:        booking.ErrBusy,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "stale seats conflict",
			err:        &booking.StaleSeatError{Seats: []string{"E-A2"}},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unknown errors stay opaque",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newWizardContext(http.MethodPost, "/v1/bookings/fl-1/confirm", "")
			require.NoError(t, wizardError(c, tt.err))
			require.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
