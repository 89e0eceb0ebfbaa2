package draft

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qairline/booking-gateway/internal/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	got, err := s.Load(ctx, "s1", "fl-1")
	require.NoError(t, err)
	require.Nil(t, got, "absent draft reads as nil, nil")

	d := &Draft{
		FlightID:   "fl-1",
		Quantity:   2,
		Flight:     model.Flight{ID: "fl-1", FlightNumber: "QA1203", BasePrice: 1_000_000},
		TicketType: model.TicketType{TripType: model.TripOneWay, ClassType: model.ClassEconomy},
		Passengers: []model.Passenger{{Email: "a@example.com"}, {}},
		SeatIDs:    []string{"E-A1", "E-B2"},
	}
	require.NoError(t, s.Save(ctx, "s1", d))
	require.Equal(t, SchemaVersion, d.SchemaVersion, "Save stamps the current schema version")
	require.False(t, d.SavedAt.IsZero())

	got, err = s.Load(ctx, "s1", "fl-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, 2, got.Quantity)
	require.Equal(t, []string{"E-A1", "E-B2"}, got.SeatIDs)
	require.Equal(t, "a@example.com", got.Passengers[0].Email)

	// Keys are scoped per session and per flight.
	got, err = s.Load(ctx, "s2", "fl-1")
	require.NoError(t, err)
	require.Nil(t, got)
	got, err = s.Load(ctx, "s1", "fl-2")
	require.NoError(t, err)
	require.Nil(t, got)

	require.NoError(t, s.Clear(ctx, "s1", "fl-1"))
	got, err = s.Load(ctx, "s1", "fl-1")
	require.NoError(t, err)
	require.Nil(t, got)

	// Clearing an absent draft is not an error.
	require.NoError(t, s.Clear(ctx, "s1", "fl-1"))
}

func TestMemoryStoreInflightMarker(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	got, err := s.Acquire(ctx, "s1", "fl-1")
	require.NoError(t, err)
	require.True(t, got)

	// A second holder is turned away while the marker is held.
	got, err = s.Acquire(ctx, "s1", "fl-1")
	require.NoError(t, err)
	require.False(t, got)

	// Markers are scoped per key.
	got, err = s.Acquire(ctx, "s1", "fl-2")
	require.NoError(t, err)
	require.True(t, got)

	require.NoError(t, s.Release(ctx, "s1", "fl-1"))
	got, err = s.Acquire(ctx, "s1", "fl-1")
	require.NoError(t, err)
	require.True(t, got)

	// Releasing an unheld marker is not an error.
	require.NoError(t, s.Release(ctx, "s2", "fl-9"))
}

func TestMemoryStoreDiscardsOldSchema(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	d := &Draft{FlightID: "fl-1", Quantity: 1}
	require.NoError(t, s.Save(ctx, "s1", d))

	// Simulate a draft written by an older build.
	s.mu.Lock()
	s.items[draftKey("s1", "fl-1")] = []byte(`{"schema_version": 0, "flight_id": "fl-1", "quantity": 1}`)
	s.mu.Unlock()

	got, err := s.Load(ctx, "s1", "fl-1")
	require.NoError(t, err)
	require.Nil(t, got, "version mismatch reads as no draft")
}
