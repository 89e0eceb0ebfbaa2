package model

// Customer mirrors the backend's customer resource.  A booking
// submission references the customer by ID; the remaining fields are
// profile data shown back to the passenger during the details step.
//
// Fields:
//  ID             – backend identifier.
//  Email          – unique email address used for lookup.
//  FirstName      – given name.
//  LastName       – family name.
//  Gender         – "male", "female" or "other"; may be empty.
//  BirthDate      – date of birth in "2006-01-02" form.
//  IdentityNumber – national id or passport number.
//  PhoneNumber    – contact phone.
//  Address        – postal address.
//  Country        – country of residence.
type Customer struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Gender         string `json:"gender"`
	BirthDate      string `json:"birth_date"`
	IdentityNumber string `json:"identity_number"`
	PhoneNumber    string `json:"phone_number"`
	Address        string `json:"address"`
	Country        string `json:"country"`
}
