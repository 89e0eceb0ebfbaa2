package booking

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qairline/booking-gateway/internal/model"
)

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name       string
		isNew      bool
		form       model.PassengerForm
		wantFields []string
	}{
		{
			name:  "valid existing customer form",
			isNew: false,
			form:  model.PassengerForm{FirstName: "An", LastName: "Nguyen", Gender: "female"},
		},
		{
			name:       "missing names",
			isNew:      false,
			form:       model.PassengerForm{Gender: "male"},
			wantFields: []string{"first_name", "last_name"},
		},
		{
			name:       "invalid gender",
			isNew:      false,
			form:       model.PassengerForm{FirstName: "An", LastName: "Nguyen", Gender: "unknown"},
			wantFields: []string{"gender"},
		},
		{
			name:  "empty gender is allowed",
			isNew: false,
			form:  model.PassengerForm{FirstName: "An", LastName: "Nguyen"},
		},
		{
			name:       "new customer requires a password",
			isNew:      true,
			form:       model.PassengerForm{FirstName: "An", LastName: "Nguyen"},
			wantFields: []string{"password"},
		},
		{
			name:  "new customer with password passes",
			isNew: true,
			form:  model.PassengerForm{FirstName: "An", LastName: "Nguyen", Password: "s3cret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PassengerState{Passenger: model.Passenger{IsNewCustomer: tt.isNew}}
			err := p.ValidateForm(tt.form)
			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				require.Empty(t, p.FormErrors)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				require.Contains(t, verr.Fields, f)
			}
			// The errors are recorded on the passenger for redisplay.
			require.Equal(t, verr.Fields, p.FormErrors)
		})
	}
}

func TestResolutionGates(t *testing.T) {
	passengers := NewPassengers(2)
	require.False(t, AllEmailsResolved(passengers))
	require.False(t, AllDetailsResolved(passengers))

	// First passenger: existing customer fetched.
	passengers[0].Email = "a@example.com"
	passengers[0].Customer = &model.Customer{ID: "c1", Email: "a@example.com"}
	require.True(t, passengers[0].EmailResolved())
	require.True(t, passengers[0].DetailsResolved())
	require.False(t, AllEmailsResolved(passengers), "second slot still unresolved")

	// Second passenger: marked as a new customer.
	passengers[1].Email = "b@example.com"
	passengers[1].IsNewCustomer = true
	require.True(t, passengers[1].EmailResolved())
	require.False(t, passengers[1].DetailsResolved(), "no customer record yet")

	require.True(t, AllEmailsResolved(passengers))
	require.False(t, AllDetailsResolved(passengers))

	passengers[1].Customer = &model.Customer{ID: "c2", Email: "b@example.com"}
	require.True(t, AllDetailsResolved(passengers))
}

func TestResolutionGatesEmptySlice(t *testing.T) {
	require.False(t, AllEmailsResolved(nil))
	require.False(t, AllDetailsResolved(nil))
}
