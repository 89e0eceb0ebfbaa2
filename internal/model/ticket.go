package model

import "time"

// TripType distinguishes one-way from round-trip bookings.  The
// value doubles the displayed and charged fare when it is
// TripRoundTrip.
type TripType string

// ClassType identifies the cabin class of a ticket.  It selects the
// cabin grid dimensions during seat selection and the fare
// multiplier during pricing.
type ClassType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"

	ClassEconomy  ClassType = "economy"
	ClassBusiness ClassType = "business"
	ClassFirst    ClassType = "first"
)

// Valid reports whether the trip type is one of the two known values.
func (t TripType) Valid() bool {
	return t == TripOneWay || t == TripRoundTrip
}

// Valid reports whether the class type is one of the three known values.
func (c ClassType) Valid() bool {
	return c == ClassEconomy || c == ClassBusiness || c == ClassFirst
}

// TicketType is the per-booking selection of trip type and cabin
// class.  It is chosen at flight-listing time and carried through
// the wizard unchanged; pricing and seat-grid selection both key on
// it.
type TicketType struct {
	TripType  TripType  `json:"trip_type"`
	ClassType ClassType `json:"class_type"`
}

// TicketClass mirrors the backend's ticket-class resource.  The
// booking submission references a class by its backend id, so the
// wizard resolves the chosen ClassType against this list.
type TicketClass struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BookingRecord is one per-passenger booking row submitted to the
// backend at confirmation time.  Price carries the authoritative
// per-ticket amount computed by the pricing calculator.
//
// Fields:
//  FlightID             – flight being booked.
//  CustomerID           – resolved customer (existing or newly registered).
//  TicketClassID        – backend id of the chosen ticket class.
//  CancellationDeadline – latest time the ticket may be cancelled.
//  SeatNumber           – seat assigned to this passenger.
//  Price                – charged per-ticket price.
type BookingRecord struct {
	FlightID             string    `json:"flight_id"`
	CustomerID           string    `json:"customer_id"`
	TicketClassID        string    `json:"ticket_class_id"`
	CancellationDeadline time.Time `json:"cancellation_deadline"`
	SeatNumber           string    `json:"seat_number"`
	Price                float64   `json:"price"`
}

// Ticket is the backend's record of a confirmed booking.  TicketCode
// may be empty when the backend omits one; the wizard then
// synthesizes a placeholder code for display.
type Ticket struct {
	ID         string `json:"id"`
	TicketCode string `json:"ticket_code"`
	SeatNumber string `json:"seat_number"`
	FlightID   string `json:"flight_id"`
	CustomerID string `json:"customer_id"`
}
