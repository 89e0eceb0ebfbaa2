package inventory

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qairline/booking-gateway/internal/model"
)

func TestGenerateGridShape(t *testing.T) {
	tests := []struct {
		class model.ClassType
		rows  int
		cols  int
	}{
		{model.ClassEconomy, 10, 4},
		{model.ClassBusiness, 5, 2},
		{model.ClassFirst, 5, 1},
	}

	wellFormed := regexp.MustCompile(`^E-[A-Z][0-9]+$`)

	for _, tt := range tests {
		t.Run(string(tt.class), func(t *testing.T) {
			cabin := Generate(tt.class, "E", nil, nil)
			require.Equal(t, tt.rows, cabin.Rows)
			require.Equal(t, tt.cols, cabin.Columns)
			require.Len(t, cabin.Seats, tt.rows)

			cells := 0
			for r, row := range cabin.Seats {
				require.Len(t, row, tt.cols)
				for c, seat := range row {
					cells++
					require.Regexp(t, wellFormed, seat.SeatNumber)
					require.Equal(t, fmt.Sprintf("E-%c%d", 'A'+rune(r), c+1), seat.SeatNumber)
					require.False(t, seat.IsBooked, "synthesized seats must be available")
				}
			}
			require.Equal(t, tt.rows*tt.cols, cells)
		})
	}
}

func TestGenerateMergesBackendSeats(t *testing.T) {
	seats := []model.Seat{
		{SeatNumber: "F-A1", IsBooked: true},
		{SeatNumber: "F-C1", IsBooked: false},
	}
	cabin := Generate(model.ClassFirst, "F", seats, nil)

	require.True(t, cabin.Seats[0][0].IsBooked, "backend booked seat kept")
	require.False(t, cabin.Seats[2][0].IsBooked)
	// Positions absent from backend data are synthesized unbooked.
	require.Equal(t, "F-B1", cabin.Seats[1][0].SeatNumber)
	require.False(t, cabin.Seats[1][0].IsBooked)
}

func TestGenerateDropsAndReportsOrphans(t *testing.T) {
	seats := []model.Seat{
		{SeatNumber: "F-A1", IsBooked: true},
		{SeatNumber: "F-Z9", IsBooked: true},  // no such row in a 5×1 grid
		{SeatNumber: "G-A1", IsBooked: false}, // wrong cabin prefix
	}

	var orphans []string
	cabin := Generate(model.ClassFirst, "F", seats, func(n string) { orphans = append(orphans, n) })

	for _, row := range cabin.Seats {
		for _, seat := range row {
			require.NotEqual(t, "F-Z9", seat.SeatNumber)
			require.NotEqual(t, "G-A1", seat.SeatNumber)
		}
	}
	require.ElementsMatch(t, []string{"F-Z9", "G-A1"}, orphans)

	// A nil callback must not panic and still drops the orphans.
	require.NotPanics(t, func() { Generate(model.ClassFirst, "F", seats, nil) })
}

func TestGenerateAll(t *testing.T) {
	cabins := GenerateAll(model.ClassBusiness, []CabinSeats{
		{CabinName: "B1", Seats: nil},
		{CabinName: "B2", Seats: []model.Seat{{SeatNumber: "B2-A1", IsBooked: true}}},
	}, nil)

	require.Len(t, cabins, 2)
	require.Equal(t, "B1", cabins[0].Name)
	require.True(t, cabins[1].Seats[0][0].IsBooked)
}
