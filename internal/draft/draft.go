// Package draft persists resumable booking drafts.  A draft is the
// snapshot of an in-progress wizard (passengers, seat ids, quantity,
// flight, ticket type) keyed by booking session and flight id.  It is
// written after every wizard mutation and read once when the wizard
// mounts, which makes the flow reload-resilient without any
// server-side session state beyond this store.
package draft

import (
	"context"
	"time"

	"github.com/qairline/booking-gateway/internal/model"
)

// SchemaVersion is embedded in every stored draft.  Drafts are not
// migrated: a loaded draft with a different version is treated as
// absent, which clears old drafts across schema changes.
const SchemaVersion = 1

// Draft is the persisted wizard snapshot.
//
// Fields:
//  SchemaVersion – see SchemaVersion.
//  FlightID      – flight this draft belongs to; part of the key.
//  Quantity      – number of tickets requested.
//  Flight        – flight snapshot carried from the listing.
//  TicketType    – chosen trip type and cabin class.
//  Passengers    – per-ticket passenger progress.
//  SeatIDs       – selected seat numbers in assignment order.
//  SavedAt       – time of the last write.
type Draft struct {
	SchemaVersion int               `json:"schema_version"`
	FlightID      string            `json:"flight_id"`
	Quantity      int               `json:"quantity"`
	Flight        model.Flight      `json:"flight"`
	TicketType    model.TicketType  `json:"ticket_type"`
	Passengers    []model.Passenger `json:"passengers"`
	SeatIDs       []string          `json:"seat_ids"`
	SavedAt       time.Time         `json:"saved_at"`
}

// Store is the persistence contract injected into the wizard.  Load
// returns (nil, nil) when no usable draft exists for the key; Save
// overwrites unconditionally (the current session is the only
// writer); Clear removes the draft, typically after a successful
// submission.
//
// Acquire and Release manage the shared in-flight marker for the
// key.  Handlers rebuild the wizard from the draft on every request,
// so a per-instance flag cannot see a submission still running in
// another request; the marker lives next to the draft instead.
// Acquire returns false when the marker is already held.  Backends
// that can expire the marker do so after a TTL bounding the backend
// call, so a crashed request cannot wedge the draft.
type Store interface {
	Load(ctx context.Context, sessionID, flightID string) (*Draft, error)
	Save(ctx context.Context, sessionID string, d *Draft) error
	Clear(ctx context.Context, sessionID, flightID string) error
	Acquire(ctx context.Context, sessionID, flightID string) (bool, error)
	Release(ctx context.Context, sessionID, flightID string) error
}
