package booking

import "github.com/qairline/booking-gateway/internal/model"

// Price computes the displayed and charged price for a booking
// attempt.  The class multiplier (business ×1.5, first ×2) and the
// round-trip multiplier (×2) compose multiplicatively, then the
// result is scaled by the ticket quantity.  No rounding is applied;
// currency formatting is a presentation concern.
func Price(basePrice float64, ticketType model.TicketType, quantity int) float64 {
	p := basePrice
	switch ticketType.ClassType {
	case model.ClassBusiness:
		p *= 1.5
	case model.ClassFirst:
		p *= 2
	}
	if ticketType.TripType == model.TripRoundTrip {
		p *= 2
	}
	return p * float64(quantity)
}

// PerTicketPrice is the authoritative per-ticket amount submitted to
// the backend with each booking record.
func PerTicketPrice(basePrice float64, ticketType model.TicketType) float64 {
	return Price(basePrice, ticketType, 1)
}
