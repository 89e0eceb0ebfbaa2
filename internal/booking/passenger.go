package booking

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/qairline/booking-gateway/internal/model"
)

// validate is the shared validator instance.  PassengerForm carries
// the unconditional rules as struct tags; the conditional password
// rule is applied in ValidateForm because it depends on the
// email-resolution outcome.
var validate = validator.New(validator.WithRequiredStructEnabled())

// PassengerState is the independent sub-flow of one passenger inside
// the wizard.  Each passenger moves through email resolution and
// detail resolution on their own; stage transitions of the wizard
// are gated on all of them having arrived.
type PassengerState struct {
	model.Passenger
}

// NewPassengers returns the empty per-ticket passenger slots created
// at wizard start.
func NewPassengers(quantity int) []*PassengerState {
	out := make([]*PassengerState, quantity)
	for i := range out {
		out[i] = &PassengerState{Passenger: model.Passenger{FormErrors: map[string]string{}}}
	}
	return out
}

// EmailResolved reports whether the email step has completed for
// this passenger: an email is set and the backend lookup branched to
// either an existing customer record or a new-customer marker.
func (p *PassengerState) EmailResolved() bool {
	return p.Email != "" && (p.Customer != nil || p.IsNewCustomer)
}

// DetailsResolved reports whether the details step has completed: a
// customer record is attached, either fetched or freshly registered.
func (p *PassengerState) DetailsResolved() bool {
	return p.Email != "" && p.Customer != nil
}

// ValidateForm checks the detail fields for this passenger.  First
// and last name are always required; password only when the
// passenger is a new customer; gender, when given, must be one of
// the enumerated values.  Field messages are recorded on the
// passenger and returned as a ValidationError so handlers can render
// them inline.
func (p *PassengerState) ValidateForm(form model.PassengerForm) error {
	fields := map[string]string{}

	if err := validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			switch fe.Field() {
			case "FirstName":
				fields["first_name"] = "first name is required"
			case "LastName":
				fields["last_name"] = "last name is required"
			case "Gender":
				fields["gender"] = "gender must be male, female or other"
			}
		}
	}
	if p.IsNewCustomer && form.Password == "" {
		fields["password"] = "password is required for new customers"
	}

	p.FormErrors = fields
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// AllEmailsResolved is the gate out of the email-entry stage.
func AllEmailsResolved(passengers []*PassengerState) bool {
	for _, p := range passengers {
		if !p.EmailResolved() {
			return false
		}
	}
	return len(passengers) > 0
}

// AllDetailsResolved is the gate out of the passenger-details stage.
func AllDetailsResolved(passengers []*PassengerState) bool {
	for _, p := range passengers {
		if !p.DetailsResolved() {
			return false
		}
	}
	return len(passengers) > 0
}
