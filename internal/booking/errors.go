// Package booking implements the multi-step booking wizard: the
// seat-selection state machine, per-passenger resolution sub-flows,
// pricing, and the confirmation handoff to the airline backend.  The
// whole package is independent of any HTTP framework so the state
// machines are unit-testable on their own.
package booking

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSeatBooked is returned when a booked seat is clicked.  The
// selection is left unchanged; handlers surface it as a non-fatal
// notice.
var ErrSeatBooked = errors.New("seat is already booked")

// ErrBusy is returned when a wizard mutation arrives while a backend
// call for the same draft is still outstanding.  The in-flight
// marker is held in the draft store, so the guard covers duplicate
// requests that each rebuilt their own wizard instance.
var ErrBusy = errors.New("a request for this booking is still in progress")

// ErrWrongStage is returned when an operation is attempted outside
// the stage it belongs to.
var ErrWrongStage = errors.New("operation not valid in the current stage")

// SelectionLimitError signals that a click would exceed the target
// seat quantity.  The selection is left unchanged.
type SelectionLimitError struct {
	Quantity int
}

func (e *SelectionLimitError) Error() string {
	return fmt.Sprintf("selection limit reached: at most %d seat(s) may be chosen", e.Quantity)
}

// IncompleteSelectionError blocks advancement out of seat selection
// when fewer seats than tickets are chosen.  It names the exact
// shortfall.
type IncompleteSelectionError struct {
	Have int
	Want int
}

func (e *IncompleteSelectionError) Error() string {
	return fmt.Sprintf("please choose %d more seat(s): %d of %d selected", e.Want-e.Have, e.Have, e.Want)
}

// StaleSeatError is raised at final submission when locally selected
// seats appear booked in a freshly re-fetched seat map.  Seats lists
// the specific conflicting seat numbers; the wizard returns to seat
// selection so the customer can re-pick.
type StaleSeatError struct {
	Seats []string
}

func (e *StaleSeatError) Error() string {
	return fmt.Sprintf("seat(s) no longer available: %s", strings.Join(e.Seats, ", "))
}

// PassengerIndexError is returned when an operation names a
// passenger slot outside the booking's quantity.  It is a client
// mistake, not a server fault.
type PassengerIndexError struct {
	Index int
	Count int
}

func (e *PassengerIndexError) Error() string {
	return fmt.Sprintf("passenger index %d out of range: this booking has %d passenger(s)", e.Index, e.Count)
}

// ValidationError carries per-field messages from a failed passenger
// form submission.  It never blocks other passengers' progress.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("passenger details invalid (%d field(s))", len(e.Fields))
}
