package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/quotation"
)

var (
	// ErrQuotationNotDraft is the sentinel wrapped by QuotationNotDraftError.
	ErrQuotationNotDraft = errors.New("quotation is not in draft")

	// ErrQuotationNotEditable is the sentinel wrapped by QuotationNotEditableError.
	ErrQuotationNotEditable = errors.New("quotation can no longer be edited")

	// ErrConflict is the sentinel wrapped by ConflictError.
	ErrConflict = errors.New("concurrent modification")
)

// QuotationNotDraftError is returned when parts are submitted to a quotation
// that already left Draft, including when a concurrent submission won.
type QuotationNotDraftError struct {
	QuotationID kernel.UUID
	Status      quotation.Status
}

func (e *QuotationNotDraftError) Error() string {
	return fmt.Sprintf("%s: quotation %s is %s", ErrQuotationNotDraft, e.QuotationID, e.Status)
}

func (e *QuotationNotDraftError) Unwrap() error {
	return ErrQuotationNotDraft
}

// QuotationNotEditableError is returned when parts of a Paid or Cancelled
// quotation are modified.
type QuotationNotEditableError struct {
	QuotationID kernel.UUID
	Status      quotation.Status
}

func (e *QuotationNotEditableError) Error() string {
	return fmt.Sprintf("%s: quotation %s is %s", ErrQuotationNotEditable, e.QuotationID, e.Status)
}

func (e *QuotationNotEditableError) Unwrap() error {
	return ErrQuotationNotEditable
}

// ConflictError is returned when a guarded commit lost against a concurrent
// writer and the stored state does not allow treating it as a duplicate.
// Retrying the command re-reads the new state.
type ConflictError struct {
	Operation string
	Cause     error
}

func NewConflictError(operation string, cause error) *ConflictError {
	return &ConflictError{Operation: operation, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrConflict, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrConflict, e.Operation)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

func (e *ConflictError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}
