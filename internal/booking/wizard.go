package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qairline/booking-gateway/internal/draft"
	"github.com/qairline/booking-gateway/internal/inventory"
	"github.com/qairline/booking-gateway/internal/model"
	"github.com/qairline/booking-gateway/internal/queue"
)

// Stage identifies the wizard's current step.  Stages are strictly
// ordered; transitions happen only through the typed operations
// below.
type Stage string

const (
	StageEmailEntry       Stage = "email_entry"
	StagePassengerDetails Stage = "passenger_details"
	StageSeatSelection    Stage = "seat_selection"
	StageConfirmation     Stage = "confirmation"
	StageSuccess          Stage = "success"
)

// Backend is the slice of the airline API the wizard depends on.
// The interface is declared on the consumer side so tests can mock
// it without touching the real client.
type Backend interface {
	SeatMap(ctx context.Context, flightID string) (json.RawMessage, error)
	CheckEmail(ctx context.Context, email string) (bool, error)
	CustomerByEmail(ctx context.Context, email string) (*model.Customer, error)
	RegisterCustomer(ctx context.Context, email string, form model.PassengerForm) (*model.Customer, error)
	TicketClasses(ctx context.Context) ([]model.TicketClass, error)
	BookTicket(ctx context.Context, rec model.BookingRecord) (*model.Ticket, error)
	BookTickets(ctx context.Context, recs []model.BookingRecord) ([]model.Ticket, error)
}

// Publisher emits the booking.confirmed event after a successful
// submission.  Publishing is fire-and-forget: a failure is logged
// and never fails the booking.
type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// Result is the terminal success payload: the backend's tickets
// (codes filled with placeholders where the backend omitted them)
// and the total charged price.
type Result struct {
	Tickets    []model.Ticket `json:"tickets"`
	TotalPrice float64        `json:"total_price"`
}

// Wizard is the multi-step booking flow coordinator.  It owns the
// passengers and the seat selection, persists a draft after every
// mutation, and hands a consistent snapshot to the backend at
// confirmation time.
//
// A wizard instance serves one booking draft and is not safe for
// concurrent use.  Instances are rebuilt from the draft on every
// request, so the in-flight marker guarding against duplicate
// submissions lives in the draft store, shared by all instances of
// the same session/flight key; a mutation arriving while a backend
// call for the same draft is outstanding fails with ErrBusy,
// mirroring the disabled-resubmit behavior of the UI.
type Wizard struct {
	SessionID  string
	Flight     model.Flight
	TicketType model.TicketType
	Quantity   int
	Passengers []*PassengerState
	Selection  *Selection
	Stage      Stage

	backend Backend
	drafts  draft.Store
	events  Publisher
}

// New starts a fresh wizard for a flight, sized to the requested
// quantity, and persists the initial draft.
func New(ctx context.Context, backend Backend, drafts draft.Store, events Publisher, sessionID string, flight model.Flight, ticketType model.TicketType, quantity int) (*Wizard, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}
	if !ticketType.TripType.Valid() || !ticketType.ClassType.Valid() {
		return nil, fmt.Errorf("invalid ticket type %q/%q", ticketType.TripType, ticketType.ClassType)
	}
	w := &Wizard{
		SessionID:  sessionID,
		Flight:     flight,
		TicketType: ticketType,
		Quantity:   quantity,
		Passengers: NewPassengers(quantity),
		Selection:  NewSelection(quantity),
		Stage:      StageEmailEntry,
		backend:    backend,
		drafts:     drafts,
		events:     events,
	}
	if err := w.persist(ctx); err != nil {
		return nil, err
	}
	return w, nil
}

// Resume rebuilds a wizard from a persisted draft.  The stage is
// derived from how far the draft got; a draft that already carries
// seat ids resumes directly at confirmation, the fast-path for
// customers returning from seat selection.
func Resume(backend Backend, drafts draft.Store, events Publisher, sessionID string, d *draft.Draft) *Wizard {
	passengers := make([]*PassengerState, len(d.Passengers))
	for i, p := range d.Passengers {
		cp := p
		if cp.FormErrors == nil {
			cp.FormErrors = map[string]string{}
		}
		passengers[i] = &PassengerState{Passenger: cp}
	}
	sel := NewSelection(d.Quantity)
	sel.Seats = append(sel.Seats, d.SeatIDs...)

	w := &Wizard{
		SessionID:  sessionID,
		Flight:     d.Flight,
		TicketType: d.TicketType,
		Quantity:   d.Quantity,
		Passengers: passengers,
		Selection:  sel,
		backend:    backend,
		drafts:     drafts,
		events:     events,
	}
	switch {
	case len(d.SeatIDs) > 0:
		w.Stage = StageConfirmation
	case AllDetailsResolved(passengers):
		w.Stage = StageSeatSelection
	case AllEmailsResolved(passengers):
		w.Stage = StagePassengerDetails
	default:
		w.Stage = StageEmailEntry
	}
	return w
}

// TotalPrice is the current display price for the whole booking.
func (w *Wizard) TotalPrice() float64 {
	return Price(w.Flight.BasePrice, w.TicketType, w.Quantity)
}

// ResolveEmail runs the email step for one passenger: look the email
// up against the backend and branch to "existing customer" (profile
// fetched, form prefilled) or "new customer" (marked for
// registration).  Passengers resolve independently; once every slot
// has resolved, the wizard advances to passenger details.
func (w *Wizard) ResolveEmail(ctx context.Context, idx int, email string) error {
	if w.Stage != StageEmailEntry && w.Stage != StagePassengerDetails {
		return ErrWrongStage
	}
	p, err := w.passenger(idx)
	if err != nil {
		return err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Fields: map[string]string{"email": "email is required"}}
	}
	if err := w.begin(ctx); err != nil {
		return err
	}
	defer w.end(ctx)

	exists, err := w.backend.CheckEmail(ctx, email)
	if err != nil {
		return err
	}
	p.Email = email
	if exists {
		cust, err := w.backend.CustomerByEmail(ctx, email)
		if err != nil {
			return err
		}
		p.IsNewCustomer = false
		p.Customer = cust
		p.Form = formFromCustomer(cust)
	} else {
		p.IsNewCustomer = true
		p.Customer = nil
	}

	if w.Stage == StageEmailEntry && AllEmailsResolved(w.Passengers) {
		w.Stage = StagePassengerDetails
	}
	return w.persist(ctx)
}

// SubmitDetails runs the details step for one passenger: validate
// the form, then register a new customer or merge the edited fields
// into the existing record.  Once every passenger carries a resolved
// customer, the wizard advances to seat selection.
func (w *Wizard) SubmitDetails(ctx context.Context, idx int, form model.PassengerForm) error {
	if w.Stage != StagePassengerDetails {
		return ErrWrongStage
	}
	p, err := w.passenger(idx)
	if err != nil {
		return err
	}
	if !p.EmailResolved() {
		return &ValidationError{Fields: map[string]string{"email": "resolve this passenger's email first"}}
	}
	if err := p.ValidateForm(form); err != nil {
		// Persist the recorded field errors so a reload shows them again.
		if perr := w.persist(ctx); perr != nil {
			return perr
		}
		return err
	}
	if err := w.begin(ctx); err != nil {
		return err
	}
	defer w.end(ctx)

	p.Form = form
	if p.IsNewCustomer {
		cust, err := w.backend.RegisterCustomer(ctx, p.Email, form)
		if err != nil {
			return err
		}
		p.Customer = cust
	} else {
		mergeForm(p.Customer, form)
	}

	if AllDetailsResolved(w.Passengers) {
		w.Stage = StageSeatSelection
	}
	return w.persist(ctx)
}

// ToggleSeat applies one seat click during seat selection.
func (w *Wizard) ToggleSeat(ctx context.Context, seat model.Seat) error {
	if w.Stage != StageSeatSelection {
		return ErrWrongStage
	}
	if err := w.Selection.Toggle(seat); err != nil {
		return err
	}
	return w.persist(ctx)
}

// ConfirmSeats leaves seat selection.  It requires the selection to
// match the quantity exactly and moves the wizard to confirmation.
func (w *Wizard) ConfirmSeats(ctx context.Context) error {
	if w.Stage != StageSeatSelection {
		return ErrWrongStage
	}
	if err := w.Selection.Complete(); err != nil {
		return err
	}
	w.Stage = StageConfirmation
	return w.persist(ctx)
}

// Confirm performs the final submission.  It re-fetches the
// authoritative seat map and rejects the submission with a
// StaleSeatError when any locally selected seat now appears booked,
// returning the wizard to seat selection with the conflicting seats
// dropped.  This reconcile-before-submit check is best effort: the
// backend takes no hold during selection, so two clients can still
// race and the backend remains the true arbiter.
//
// On success it builds one booking record per passenger, submits a
// single- or multi-ticket call depending on quantity, publishes the
// booking.confirmed event, clears the persisted draft and moves to
// the terminal success stage.
func (w *Wizard) Confirm(ctx context.Context) (*Result, error) {
	if w.Stage != StageConfirmation {
		return nil, ErrWrongStage
	}
	if err := w.Selection.Complete(); err != nil {
		return nil, err
	}
	if !AllDetailsResolved(w.Passengers) {
		return nil, ErrWrongStage
	}
	if err := w.begin(ctx); err != nil {
		return nil, err
	}
	defer w.end(ctx)

	payload, err := w.backend.SeatMap(ctx, w.Flight.ID)
	if err != nil {
		return nil, err
	}
	booked, err := inventory.BookedSeats(payload, w.TicketType.ClassType)
	if err != nil {
		return nil, err
	}
	var stale []string
	for _, n := range w.Selection.Seats {
		if booked[n] {
			stale = append(stale, n)
		}
	}
	if len(stale) > 0 {
		kept := w.Selection.Seats[:0]
		for _, n := range w.Selection.Seats {
			if !booked[n] {
				kept = append(kept, n)
			}
		}
		w.Selection.Seats = kept
		w.Stage = StageSeatSelection
		if perr := w.persist(ctx); perr != nil {
			return nil, perr
		}
		return nil, &StaleSeatError{Seats: stale}
	}

	classID, err := w.resolveClassID(ctx)
	if err != nil {
		return nil, err
	}
	perTicket := PerTicketPrice(w.Flight.BasePrice, w.TicketType)
	deadline := cancellationDeadline(w.Flight.DepartureTime)

	records := make([]model.BookingRecord, w.Quantity)
	for i, p := range w.Passengers {
		records[i] = model.BookingRecord{
			FlightID:             w.Flight.ID,
			CustomerID:           p.Customer.ID,
			TicketClassID:        classID,
			CancellationDeadline: deadline,
			SeatNumber:           w.Selection.Seats[i],
			Price:                perTicket,
		}
	}

	var tickets []model.Ticket
	if w.Quantity == 1 {
		t, err := w.backend.BookTicket(ctx, records[0])
		if err != nil {
			return nil, err
		}
		tickets = []model.Ticket{*t}
	} else {
		tickets, err = w.backend.BookTickets(ctx, records)
		if err != nil {
			return nil, err
		}
	}
	for i := range tickets {
		if tickets[i].TicketCode == "" {
			tickets[i].TicketCode = placeholderTicketCode()
		}
	}

	w.publishConfirmed(ctx, tickets)

	if err := w.drafts.Clear(ctx, w.SessionID, w.Flight.ID); err != nil {
		log.Printf("booking: clear draft failed: %v", err)
	}
	w.Stage = StageSuccess
	return &Result{Tickets: tickets, TotalPrice: w.TotalPrice()}, nil
}

func (w *Wizard) publishConfirmed(ctx context.Context, tickets []model.Ticket) {
	if w.events == nil {
		return
	}
	codes := make([]string, len(tickets))
	for i, t := range tickets {
		codes[i] = t.TicketCode
	}
	ev := queue.BookingConfirmedEvent{
		FlightID:      w.Flight.ID,
		FlightNumber:  w.Flight.FlightNumber,
		Route:         fmt.Sprintf("%s → %s", w.Flight.DepartureCity, w.Flight.ArrivalCity),
		DepartureTime: w.Flight.DepartureTime.UTC().Format(time.RFC3339),
		TicketClass:   string(w.TicketType.ClassType),
		Quantity:      w.Quantity,
		SeatNumbers:   append([]string(nil), w.Selection.Seats...),
		TicketCodes:   codes,
		TotalPrice:    w.TotalPrice(),
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := w.events.PublishBookingConfirmed(ctx, ev); err != nil {
		log.Printf("booking: publish booking.confirmed failed: %v", err)
	}
}

// resolveClassID maps the chosen cabin class onto the backend's
// ticket-class id.  When the backend lists no matching class the
// class name itself is submitted, leaving the decision to the
// backend.
func (w *Wizard) resolveClassID(ctx context.Context) (string, error) {
	classes, err := w.backend.TicketClasses(ctx)
	if err != nil {
		return "", err
	}
	want := string(w.TicketType.ClassType)
	for _, c := range classes {
		if strings.Contains(strings.ToLower(c.Name), want) {
			return c.ID, nil
		}
	}
	return want, nil
}

// cancellationDeadline is 24 hours before departure, floored at the
// current time for flights departing sooner than that.
func cancellationDeadline(departure time.Time) time.Time {
	d := departure.Add(-24 * time.Hour)
	if now := time.Now().UTC(); d.Before(now) {
		return now
	}
	return d
}

func placeholderTicketCode() string {
	return "QA-" + strings.ToUpper(uuid.NewString()[:8])
}

func (w *Wizard) passenger(idx int) (*PassengerState, error) {
	if idx < 0 || idx >= len(w.Passengers) {
		return nil, &PassengerIndexError{Index: idx, Count: len(w.Passengers)}
	}
	return w.Passengers[idx], nil
}

// begin takes the shared in-flight marker for this draft before a
// backend call; a duplicate request for the same session and flight
// fails with ErrBusy until end releases it.
func (w *Wizard) begin(ctx context.Context) error {
	ok, err := w.drafts.Acquire(ctx, w.SessionID, w.Flight.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBusy
	}
	return nil
}

func (w *Wizard) end(ctx context.Context) {
	if err := w.drafts.Release(ctx, w.SessionID, w.Flight.ID); err != nil {
		log.Printf("booking: release in-flight marker failed: %v", err)
	}
}

// persist writes the current snapshot through the draft store.  It
// runs after every mutation so a reload at any stage resumes where
// the customer left off.
func (w *Wizard) persist(ctx context.Context) error {
	d := &draft.Draft{
		FlightID:   w.Flight.ID,
		Quantity:   w.Quantity,
		Flight:     w.Flight,
		TicketType: w.TicketType,
		Passengers: make([]model.Passenger, len(w.Passengers)),
		SeatIDs:    append([]string(nil), w.Selection.Seats...),
	}
	for i, p := range w.Passengers {
		d.Passengers[i] = p.Passenger
	}
	return w.drafts.Save(ctx, w.SessionID, d)
}

// formFromCustomer prefills the details form with an existing
// customer's profile so returning customers only edit what changed.
func formFromCustomer(c *model.Customer) model.PassengerForm {
	return model.PassengerForm{
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Gender:         c.Gender,
		BirthDate:      c.BirthDate,
		IdentityNumber: c.IdentityNumber,
		PhoneNumber:    c.PhoneNumber,
		Address:        c.Address,
		Country:        c.Country,
	}
}

// mergeForm copies edited fields onto the existing customer record.
// Empty fields keep the stored value.
func mergeForm(c *model.Customer, form model.PassengerForm) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.FirstName, form.FirstName)
	set(&c.LastName, form.LastName)
	set(&c.Gender, form.Gender)
	set(&c.BirthDate, form.BirthDate)
	set(&c.IdentityNumber, form.IdentityNumber)
	set(&c.PhoneNumber, form.PhoneNumber)
	set(&c.Address, form.Address)
	set(&c.Country, form.Country)
}
