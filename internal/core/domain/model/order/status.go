package order

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
)

// ErrCannotAdvance is returned when a Delivered or Unknown order is advanced.
var ErrCannotAdvance = errors.New("order status cannot advance")

// Status represents the fulfilment state of a manufacturing order.
// It advances strictly forward, one step at a time:
//
//	Created ──> InProgress ──> Shipped ──> Delivered
//
// Delivered is final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status of an order materialized from a paid quotation.
	Created

	// InProgress indicates the manufacturer started production.
	InProgress

	// Shipped indicates the part left the manufacturer.
	Shipped

	// Delivered indicates the customer received the part. No further transitions are allowed.
	Delivered
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Created:    "Created",
		InProgress: "InProgress",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:    "Created",
		InProgress: "InProgress",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Created, InProgress, Shipped, Delivered.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It is safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseStatus converts the String form of a valid status back into a Status.
func ParseStatus(value string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", value))
}

// IsFinal reports whether no further transition is possible.
func (s Status) IsFinal() bool {
	return s == Delivered
}

// Advance returns the status that directly follows s.
//
// Valid transitions:
//   - Created -> InProgress
//   - InProgress -> Shipped
//   - Shipped -> Delivered
//
// Delivered and Unknown cannot advance.
func (s Status) Advance() (Status, error) {
	switch s {
	case Created:
		return InProgress, nil
	case InProgress:
		return Shipped, nil
	case Shipped:
		return Delivered, nil
	case Unknown, Delivered:
	}

	return 0, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%w: %s is not a valid status to advance", ErrCannotAdvance, s.String()),
	)
}
