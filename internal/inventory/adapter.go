// Package inventory normalizes the airline backend's seat-map
// payloads and derives the fixed per-class cabin grids used by seat
// selection.  The backend's response shape is not guaranteed; the
// adapter resolves it exactly once so that downstream code only ever
// sees []CabinSeats and model.Cabin values.
package inventory

import (
	"encoding/json"
	"errors"

	"github.com/qairline/booking-gateway/internal/model"
)

// ErrInvalidInventoryFormat is returned when the seat-map payload
// matches neither of the recognized shapes.  Handlers translate it
// into a step-level error that blocks entry to seat selection.
var ErrInvalidInventoryFormat = errors.New("invalid inventory format")

// CabinSeats is the normalized per-cabin seat list for one ticket
// class: the cabin's display name plus every seat entry the backend
// reported for it.  The list may be sparse relative to the physical
// layout; the layout generator fills the gaps.
type CabinSeats struct {
	CabinName string       `json:"cabin_name"`
	Seats     []model.Seat `json:"seats"`
}

// classKey maps a ticket class to the key used by the object-shaped
// seat-map payload.
func classKey(class model.ClassType) string {
	switch class {
	case model.ClassBusiness:
		return "business_class"
	case model.ClassFirst:
		return "first_class"
	default:
		return "economy_class"
	}
}

// rawCabin is the wire form of one cabin entry.  Seat entries are
// kept raw because they may be plain strings or objects.
type rawCabin struct {
	Cabin string            `json:"cabin"`
	Seats []json.RawMessage `json:"seats"`
}

// Normalize resolves the backend seat-map payload for the requested
// class.  Two shapes are accepted:
//
//	[{"cabin": "F", "seats": [...]}, ...]
//	{"first_class": [...], "business_class": [...], "economy_class": [...]}
//
// where each seat entry is either a bare seat-number string (treated
// as unbooked) or a {seat_number, is_booked} object.  Any other
// shape yields ErrInvalidInventoryFormat.
func Normalize(payload json.RawMessage, class model.ClassType) ([]CabinSeats, error) {
	if len(payload) == 0 {
		return nil, ErrInvalidInventoryFormat
	}

	var cabins []rawCabin
	if err := json.Unmarshal(payload, &cabins); err == nil {
		return normalizeCabins(cabins)
	}

	var byClass map[string][]rawCabin
	if err := json.Unmarshal(payload, &byClass); err == nil {
		cabins, ok := byClass[classKey(class)]
		if !ok {
			// A class-keyed object with the class absent is still the
			// recognized shape; there is simply nothing for this class.
			if len(byClass) > 0 {
				return []CabinSeats{}, nil
			}
			return nil, ErrInvalidInventoryFormat
		}
		return normalizeCabins(cabins)
	}

	return nil, ErrInvalidInventoryFormat
}

func normalizeCabins(cabins []rawCabin) ([]CabinSeats, error) {
	out := make([]CabinSeats, 0, len(cabins))
	for _, rc := range cabins {
		cs := CabinSeats{CabinName: rc.Cabin, Seats: make([]model.Seat, 0, len(rc.Seats))}
		for _, raw := range rc.Seats {
			seat, err := normalizeSeat(raw)
			if err != nil {
				return nil, err
			}
			cs.Seats = append(cs.Seats, seat)
		}
		out = append(out, cs)
	}
	return out, nil
}

// normalizeSeat accepts a seat entry that is either a plain string
// or a seat object.  Strings carry no occupancy information and are
// treated as unbooked.
func normalizeSeat(raw json.RawMessage) (model.Seat, error) {
	var number string
	if err := json.Unmarshal(raw, &number); err == nil {
		return model.Seat{SeatNumber: number, IsBooked: false}, nil
	}
	var seat model.Seat
	if err := json.Unmarshal(raw, &seat); err == nil && seat.SeatNumber != "" {
		return seat, nil
	}
	return model.Seat{}, ErrInvalidInventoryFormat
}

// BookedSeats extracts the set of currently booked seat numbers for
// the requested class.  The confirmation step uses it to detect
// seats that became booked between the seat-map fetch and final
// submission.
func BookedSeats(payload json.RawMessage, class model.ClassType) (map[string]bool, error) {
	cabins, err := Normalize(payload, class)
	if err != nil {
		return nil, err
	}
	booked := make(map[string]bool)
	for _, c := range cabins {
		for _, s := range c.Seats {
			if s.IsBooked {
				booked[s.SeatNumber] = true
			}
		}
	}
	return booked, nil
}
