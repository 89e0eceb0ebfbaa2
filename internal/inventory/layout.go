package inventory

import (
	"fmt"

	"github.com/qairline/booking-gateway/internal/model"
)

// Dimensions returns the fixed (rows, columns) grid size for a
// ticket class.  Economy cabins are 10×4, business 5×2 and first
// 5×1; unknown classes fall back to the economy grid.
func Dimensions(class model.ClassType) (rows, cols int) {
	switch class {
	case model.ClassBusiness:
		return 5, 2
	case model.ClassFirst:
		return 5, 1
	default:
		return 10, 4
	}
}

// SeatNumber builds the canonical seat identity for a grid
// coordinate: "{cabin}-{rowLetter}{column}" with rows lettered from
// 'A' and columns numbered from 1.
func SeatNumber(cabinName string, row, col int) string {
	return fmt.Sprintf("%s-%c%d", cabinName, 'A'+rune(row), col+1)
}

// Generate derives the complete pickable grid for one cabin.  Every
// grid coordinate gets exactly one seat: the backend's entry when
// one matches the canonical seat number, otherwise a synthesized
// unbooked seat.  Backend seat lists may be sparse (only booked
// seats, or a subset of the physical layout), so absence means
// available, never booked or non-existent.
//
// Entries whose seat number matches no grid coordinate are dropped
// from the grid; each dropped number is reported through onOrphan
// when the callback is non-nil, so callers can surface a
// data-integrity warning instead of losing them silently.
func Generate(class model.ClassType, cabinName string, seats []model.Seat, onOrphan func(seatNumber string)) model.Cabin {
	rows, cols := Dimensions(class)

	byNumber := make(map[string]model.Seat, len(seats))
	for _, s := range seats {
		byNumber[s.SeatNumber] = s
	}

	grid := make([][]model.Seat, rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]model.Seat, cols)
		for c := 0; c < cols; c++ {
			number := SeatNumber(cabinName, r, c)
			if s, ok := byNumber[number]; ok {
				grid[r][c] = s
				delete(byNumber, number)
				continue
			}
			grid[r][c] = model.Seat{SeatNumber: number, IsBooked: false}
		}
	}

	if onOrphan != nil {
		for number := range byNumber {
			onOrphan(number)
		}
	}

	return model.Cabin{Name: cabinName, Rows: rows, Columns: cols, Seats: grid}
}

// GenerateAll runs Generate over every normalized cabin of a class,
// funneling orphan reports through the same callback.
func GenerateAll(class model.ClassType, cabins []CabinSeats, onOrphan func(seatNumber string)) []model.Cabin {
	out := make([]model.Cabin, 0, len(cabins))
	for _, c := range cabins {
		out = append(out, Generate(class, c.CabinName, c.Seats, onOrphan))
	}
	return out
}
