package inventory

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qairline/booking-gateway/internal/model"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		class   model.ClassType
		want    []CabinSeats
		wantErr error
	}{
		{
			name: "array of cabins with seat objects",
			payload: `[
				{"cabin": "F", "seats": [
					{"seat_number": "F-A1", "is_booked": true},
					{"seat_number": "F-A2", "is_booked": false}
				]}
			]`,
			class: model.ClassFirst,
			want: []CabinSeats{
				{CabinName: "F", Seats: []model.Seat{
					{SeatNumber: "F-A1", IsBooked: true},
					{SeatNumber: "F-A2", IsBooked: false},
				}},
			},
		},
		{
			name: "class keyed object selects the requested class",
			payload: `{
				"economy_class": [{"cabin": "E", "seats": ["E-A1"]}],
				"business_class": [{"cabin": "B", "seats": ["B-A1"]}]
			}`,
			class: model.ClassBusiness,
			want: []CabinSeats{
				{CabinName: "B", Seats: []model.Seat{{SeatNumber: "B-A1", IsBooked: false}}},
			},
		},
		{
			name:    "string seat entries are unbooked",
			payload: `[{"cabin": "E", "seats": ["E-A1", {"seat_number": "E-A2", "is_booked": true}]}]`,
			class:   model.ClassEconomy,
			want: []CabinSeats{
				{CabinName: "E", Seats: []model.Seat{
					{SeatNumber: "E-A1", IsBooked: false},
					{SeatNumber: "E-A2", IsBooked: true},
				}},
			},
		},
		{
			name:    "class absent from keyed object yields an empty list",
			payload: `{"economy_class": [{"cabin": "E", "seats": []}]}`,
			class:   model.ClassFirst,
			want:    []CabinSeats{},
		},
		{
			name:    "unrecognized shape",
			payload: `"totally not a seat map"`,
			class:   model.ClassEconomy,
			wantErr: ErrInvalidInventoryFormat,
		},
		{
			name:    "empty payload",
			payload: ``,
			class:   model.ClassEconomy,
			wantErr: ErrInvalidInventoryFormat,
		},
		{
			name:    "seat entry that is neither string nor object",
			payload: `[{"cabin": "E", "seats": [42]}]`,
			class:   model.ClassEconomy,
			wantErr: ErrInvalidInventoryFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(json.RawMessage(tt.payload), tt.class)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestBookedSeats(t *testing.T) {
	payload := json.RawMessage(`[
		{"cabin": "F", "seats": [
			{"seat_number": "F-A1", "is_booked": true},
			{"seat_number": "F-A2", "is_booked": false},
			"F-A3"
		]}
	]`)

	booked, err := BookedSeats(payload, model.ClassFirst)
	require.NoError(t, err)
	require.Equal(t, map[string]bool{"F-A1": true}, booked)
}
