package model

// Seat is a single pickable position in a cabin grid.  SeatNumber is
// the durable identity ("F-A1"); IsBooked reflects server-reported
// occupancy at the moment the seat map was fetched and may be stale
// by confirmation time.
type Seat struct {
	SeatNumber string `json:"seat_number"`
	IsBooked   bool   `json:"is_booked"`
}

// Cabin is a derived 2D seat grid for one named seating section.  It
// is regenerated from backend seat data every time the seat-selection
// step loads and is never persisted.  Every grid cell holds exactly
// one Seat, real or synthesized.
//
// Fields:
//  Name    – cabin display name from the backend ("F", "Front", ...).
//  Rows    – number of rows, fixed by the ticket class.
//  Columns – number of columns, fixed by the ticket class.
//  Seats   – Rows×Columns grid, Seats[row][col].
type Cabin struct {
	Name    string   `json:"name"`
	Rows    int      `json:"rows"`
	Columns int      `json:"columns"`
	Seats   [][]Seat `json:"seats"`
}
