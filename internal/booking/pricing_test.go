package booking

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qairline/booking-gateway/internal/model"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		tt       model.TicketType
		quantity int
		want     float64
	}{
		{
			name:     "business round-trip for two",
			base:     1_000_000,
			tt:       model.TicketType{ClassType: model.ClassBusiness, TripType: model.TripRoundTrip},
			quantity: 2,
			want:     6_000_000,
		},
		{
			name:     "economy one-way single",
			base:     2_000_000,
			tt:       model.TicketType{ClassType: model.ClassEconomy, TripType: model.TripOneWay},
			quantity: 1,
			want:     2_000_000,
		},
		{
			name:     "first class doubles the base",
			base:     500,
			tt:       model.TicketType{ClassType: model.ClassFirst, TripType: model.TripOneWay},
			quantity: 1,
			want:     1000,
		},
		{
			name:     "round-trip doubles independently of class",
			base:     500,
			tt:       model.TicketType{ClassType: model.ClassEconomy, TripType: model.TripRoundTrip},
			quantity: 3,
			want:     3000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Price(tt.base, tt.tt, tt.quantity))
		})
	}
}

func TestPerTicketPrice(t *testing.T) {
	tt := model.TicketType{ClassType: model.ClassBusiness, TripType: model.TripRoundTrip}
	require.Equal(t, 3_000_000.0, PerTicketPrice(1_000_000, tt))
}
