package model

// PassengerForm holds the editable details collected for one
// passenger during the details step.  Validation tags express the
// unconditional rules; password is only required for new customers,
// which the wizard checks separately since the rule depends on the
// email-resolution outcome.
type PassengerForm struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Password       string `json:"password,omitempty"`
	Gender         string `json:"gender" validate:"omitempty,oneof=male female other"`
	BirthDate      string `json:"birth_date"`
	IdentityNumber string `json:"identity_number"`
	PhoneNumber    string `json:"phone_number"`
	Address        string `json:"address"`
	Country        string `json:"country"`
}

// Passenger is the per-ticket booking participant.  One instance
// exists per requested ticket; the slice is sized to the quantity at
// wizard start and owned exclusively by the wizard.
//
// Lifecycle: created empty → email resolved against the backend
// (fills IsNewCustomer and possibly Customer) → form submitted and
// validated → Customer populated (registered or fetched) → consumed
// at final submission.
//
// Fields:
//  Email         – email entered in the first wizard step.
//  IsNewCustomer – true when the backend has no account for Email.
//  Customer      – resolved customer record; nil until the details
//                  step completes for this passenger.
//  Form          – collected detail fields.
//  FormErrors    – per-field validation messages from the last
//                  submission; empty when the form passed.
type Passenger struct {
	Email         string            `json:"email"`
	IsNewCustomer bool              `json:"is_new_customer"`
	Customer      *Customer         `json:"customer,omitempty"`
	Form          PassengerForm     `json:"form"`
	FormErrors    map[string]string `json:"form_errors,omitempty"`
}
