package booking

import "github.com/qairline/booking-gateway/internal/model"

// Selection is the seat-selection state machine: an ordered set of
// seat numbers (insertion order = passenger assignment order)
// bounded by the ticket quantity.  Invariants held across every
// transition: len(Seats) <= Quantity, no duplicates, and no seat
// that was booked at click time.
type Selection struct {
	Quantity int      `json:"quantity"`
	Seats    []string `json:"seats"`
}

// NewSelection returns an empty selection targeting the given
// quantity.
func NewSelection(quantity int) *Selection {
	return &Selection{Quantity: quantity, Seats: []string{}}
}

// Contains reports whether the seat number is currently selected.
func (s *Selection) Contains(seatNumber string) bool {
	for _, n := range s.Seats {
		if n == seatNumber {
			return true
		}
	}
	return false
}

// Toggle applies one click on a grid cell.  Booked seats are
// rejected with ErrSeatBooked.  Clicking a selected seat deselects
// it; clicking a new seat appends it unless the quantity is already
// reached, in which case a SelectionLimitError is returned and the
// state is unchanged.
func (s *Selection) Toggle(seat model.Seat) error {
	if seat.IsBooked {
		return ErrSeatBooked
	}
	if s.Contains(seat.SeatNumber) {
		out := s.Seats[:0]
		for _, n := range s.Seats {
			if n != seat.SeatNumber {
				out = append(out, n)
			}
		}
		s.Seats = out
		return nil
	}
	if len(s.Seats) >= s.Quantity {
		return &SelectionLimitError{Quantity: s.Quantity}
	}
	s.Seats = append(s.Seats, seat.SeatNumber)
	return nil
}

// Complete is the precondition for leaving seat selection: exactly
// Quantity seats must be chosen.  A partial selection yields an
// IncompleteSelectionError naming the shortfall.
func (s *Selection) Complete() error {
	if len(s.Seats) != s.Quantity {
		return &IncompleteSelectionError{Have: len(s.Seats), Want: s.Quantity}
	}
	return nil
}
