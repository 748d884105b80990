package quotation

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel wrapped by InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid quotation status transition")

// Status represents the lifecycle state of a quotation.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	Draft
	Quoted
	Paid
	Cancelled
)

// Event is something that happened to a quotation and may move its status.
type Event string

const (
	EventPartsQuoted           Event = "parts quoted"
	EventSelectionsCompleted   Event = "selections completed"
	EventPaymentConfirmed      Event = "payment confirmed"
	EventCancellationRequested Event = "cancellation requested"
)

// Events lists every event, in table order.
func Events() []Event {
	return []Event{EventPartsQuoted, EventSelectionsCompleted, EventPaymentConfirmed, EventCancellationRequested}
}

// transitions is the complete state table. Missing entries are invalid.
//
//nolint:gochecknoglobals // read-only lookup table
var transitions = map[Status]map[Event]Status{
	Draft: {
		EventPartsQuoted:           Quoted,
		EventCancellationRequested: Cancelled,
	},
	Quoted: {
		EventSelectionsCompleted:   Quoted,
		EventPaymentConfirmed:      Paid,
		EventCancellationRequested: Cancelled,
	},
}

//nolint:gochecknoglobals // read-only lookup table
var statusStrings = map[Status]string{
	Unknown:   "Unknown",
	Draft:     "Draft",
	Quoted:    "Quoted",
	Paid:      "Paid",
	Cancelled: "Cancelled",
}

// InvalidTransitionError reports an event that the state table does not allow
// from the current status.
type InvalidTransitionError struct {
	From  Status
	Event Event
}

func NewInvalidTransitionError(from Status, event Event) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, Event: event}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s from %s", ErrInvalidTransition, e.Event, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Next returns the status reached by applying event, or InvalidTransitionError.
func (s Status) Next(event Event) (Status, error) {
	if next, ok := transitions[s][event]; ok {
		return next, nil
	}
	return Unknown, NewInvalidTransitionError(s, event)
}

// IsTerminal reports whether no event can leave the status.
func (s Status) IsTerminal() bool {
	return s == Paid || s == Cancelled
}

// Validate checks that s is one of the defined statuses.
func (s Status) Validate() error {
	if _, ok := statusStrings[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseStatus converts the String form back into a Status.
func ParseStatus(value string) (Status, error) {
	for status, str := range statusStrings {
		if str == value && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", value))
}
