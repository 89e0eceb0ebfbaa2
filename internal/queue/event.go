// Package queue defines the payloads exchanged over the message
// broker and the background consumer that records confirmed bookings
// to logs/booking.log.
package queue

// BookingConfirmedEvent is published when a booking is successfully
// submitted to the airline backend.  It contains enough information
// for downstream consumers to log, notify, or trigger analytics
// without calling the backend again.
type BookingConfirmedEvent struct {
	FlightID      string   `json:"flight_id"`
	FlightNumber  string   `json:"flight_number"`
	Route         string   `json:"route"`
	DepartureTime string   `json:"departure_time"`
	TicketClass   string   `json:"ticket_class"`
	Quantity      int      `json:"quantity"`
	SeatNumbers   []string `json:"seats"`
	TicketCodes   []string `json:"ticket_codes"`
	TotalPrice    float64  `json:"total_price"`
	ConfirmedAt   string   `json:"confirmed_at"`
}
