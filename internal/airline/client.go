// Package airline is the typed REST client for the airline backend
// API.  The backend owns all persistence, pricing authority and
// inventory; this client is a thin transport wrapper that decodes
// the backend's {data, message} envelope and surfaces its error
// messages verbatim.
package airline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/qairline/booking-gateway/internal/model"
)

// Client talks to the airline backend.  Token and UserID, when set,
// are forwarded as bearer-token and user-id headers on the endpoints
// that require them (multi-ticket booking, reference data).
type Client struct {
	baseURL    string
	token      string
	userID     string
	httpClient *http.Client
}

// APIError is a non-2xx backend response.  Message carries the
// backend's own message when the body had one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend request failed with status %d", e.Status)
}

// New builds a client for the given base URL ("https://.../api").
// Calls share a 30s client timeout; callers cancel earlier through
// their context.
func New(baseURL, token, userID string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		userID:     userID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do issues a request and returns the envelope's data payload.
// authed adds the bearer and user-id headers.
func (c *Client) do(ctx context.Context, method, path string, body any, authed bool) (json.RawMessage, error) {
	var rd io.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(bs)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if authed && c.userID != "" {
		req.Header.Set("X-User-Id", c.userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if env.Data != nil {
		return env.Data, nil
	}
	// Some endpoints reply without the envelope.
	return raw, nil
}

func decode[T any](raw json.RawMessage) (T, error) {
	var out T
	if len(raw) == 0 {
		return out, nil
	}
	err := json.Unmarshal(raw, &out)
	return out, err
}

// ListFlights fetches every listed flight.
func (c *Client) ListFlights(ctx context.Context) ([]model.Flight, error) {
	raw, err := c.do(ctx, http.MethodGet, "/flights", nil, false)
	if err != nil {
		return nil, err
	}
	return decode[[]model.Flight](raw)
}

// SearchCriteria is the backend's flight-search request body.  Empty
// fields are omitted from the query.
type SearchCriteria struct {
	DepartureCity string `json:"departure_city,omitempty"`
	ArrivalCity   string `json:"arrival_city,omitempty"`
	DepartureDate string `json:"departure_date,omitempty"`
	ReturnDate    string `json:"return_date,omitempty"`
	Passengers    int    `json:"passengers,omitempty"`
}

// SearchFlights runs a backend flight search.
func (c *Client) SearchFlights(ctx context.Context, criteria SearchCriteria) ([]model.Flight, error) {
	raw, err := c.do(ctx, http.MethodPost, "/flights/search", criteria, false)
	if err != nil {
		return nil, err
	}
	return decode[[]model.Flight](raw)
}

// SeatMap returns the raw seat-map payload for a flight.  The shape
// varies; internal/inventory resolves it.
func (c *Client) SeatMap(ctx context.Context, flightID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/seats/"+url.PathEscape(flightID), nil, false)
}

// TicketClasses lists the backend's ticket classes.
func (c *Client) TicketClasses(ctx context.Context) ([]model.TicketClass, error) {
	raw, err := c.do(ctx, http.MethodGet, "/ticket-classes", nil, false)
	if err != nil {
		return nil, err
	}
	return decode[[]model.TicketClass](raw)
}

// CheckEmail reports whether a customer account exists for the email.
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	raw, err := c.do(ctx, http.MethodGet, "/check-email?email="+url.QueryEscape(email), nil, false)
	if err != nil {
		return false, err
	}
	var out struct {
		Exists bool `json:"exists"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

// CustomerByEmail fetches an existing customer's profile.
func (c *Client) CustomerByEmail(ctx context.Context, email string) (*model.Customer, error) {
	raw, err := c.do(ctx, http.MethodGet, "/customer/by-email/"+url.PathEscape(email), nil, false)
	if err != nil {
		return nil, err
	}
	cust, err := decode[model.Customer](raw)
	if err != nil {
		return nil, err
	}
	return &cust, nil
}

// registerRequest is the registration body: the email plus the
// collected detail fields.  The password travels in plain form over
// HTTPS; the backend owns hashing and credential storage.
type registerRequest struct {
	Email string `json:"email"`
	model.PassengerForm
}

// RegisterCustomer creates a new customer account and returns the
// stored record.
func (c *Client) RegisterCustomer(ctx context.Context, email string, form model.PassengerForm) (*model.Customer, error) {
	raw, err := c.do(ctx, http.MethodPost, "/customer/register", registerRequest{Email: email, PassengerForm: form}, false)
	if err != nil {
		return nil, err
	}
	cust, err := decode[model.Customer](raw)
	if err != nil {
		return nil, err
	}
	return &cust, nil
}

// BookTicket submits a single-ticket booking.
func (c *Client) BookTicket(ctx context.Context, rec model.BookingRecord) (*model.Ticket, error) {
	raw, err := c.do(ctx, http.MethodPost, "/tickets/book", rec, false)
	if err != nil {
		return nil, err
	}
	t, err := decode[model.Ticket](raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// BookTickets submits a multi-ticket booking.  This endpoint
// requires the bearer token and user-id headers.
func (c *Client) BookTickets(ctx context.Context, recs []model.BookingRecord) ([]model.Ticket, error) {
	body := struct {
		Tickets []model.BookingRecord `json:"tickets"`
	}{Tickets: recs}
	raw, err := c.do(ctx, http.MethodPost, "/tickets/book-multiple", body, true)
	if err != nil {
		return nil, err
	}
	return decode[[]model.Ticket](raw)
}

// Reference fetches a reference-data collection (cities, airports,
// routes, airlines, aircraft).  Most of these require the bearer
// token; the payload is proxied through untyped.
func (c *Client) Reference(ctx context.Context, resource string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/"+url.PathEscape(resource), nil, true)
}
