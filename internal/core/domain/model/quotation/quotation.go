package quotation

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrQuotationIsNotConstructed = errors.New("Quotation must be created via NewQuotation or RestoreQuotation")

	// ErrPartsNotQuoted is returned when a quotation would become Quoted while
	// at least one of its parts has no priced option.
	ErrPartsNotQuoted = errors.New("every part must have at least one price option")

	// ErrPaymentAmountMismatch is the sentinel wrapped by PaymentAmountMismatchError.
	ErrPaymentAmountMismatch = errors.New("payment amount does not match selected quotes")
)

// PaymentAmountMismatchError reports a payment whose amount or currency
// differs from the sum of the selected part quotes.
type PaymentAmountMismatchError struct {
	Expected kernel.Money
	Received kernel.Money
}

func (e *PaymentAmountMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, received %s", ErrPaymentAmountMismatch, e.Expected, e.Received)
}

func (e *PaymentAmountMismatchError) Unwrap() error {
	return ErrPaymentAmountMismatch
}

// Quotation is a priced proposal for manufacturing the parts of one project.
type Quotation struct {
	id        kernel.UUID
	projectID kernel.UUID
	status    Status
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewQuotation opens a Draft quotation for projectID.
func NewQuotation(projectID kernel.UUID, now time.Time) (*Quotation, error) {
	if err := projectID.Validate(); err != nil {
		return nil, err
	}

	return &Quotation{
		id:        kernel.NewUUID(),
		projectID: projectID,
		status:    Draft,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreQuotation rebuilds a quotation from persisted state.
func RestoreQuotation(id, projectID kernel.UUID, status Status, createdAt, updatedAt time.Time) (*Quotation, error) {
	if err := errors.Join(id.Validate(), projectID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Quotation{
		id:        id,
		projectID: projectID,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q *Quotation) Validate() error {
	if q == nil {
		return ErrQuotationIsNotConstructed
	}
	return q.guard.Validate(ErrQuotationIsNotConstructed)
}

func (q *Quotation) ID() kernel.UUID        { return q.id }
func (q *Quotation) ProjectID() kernel.UUID { return q.projectID }
func (q *Quotation) Status() Status         { return q.status }
func (q *Quotation) CreatedAt() time.Time   { return q.createdAt }
func (q *Quotation) UpdatedAt() time.Time   { return q.updatedAt }

// MarkQuoted moves a Draft quotation to Quoted once every one of its
// partCount parts has at least one price option.
func (q *Quotation) MarkQuoted(partCount, quotedPartCount int, now time.Time) error {
	next, err := q.status.Next(EventPartsQuoted)
	if err != nil {
		return err
	}
	if partCount == 0 || quotedPartCount != partCount {
		return ErrPartsNotQuoted
	}

	q.apply(next, now)
	return nil
}

// RecordSelections checks that the quotation accepts part quote selections
// and reports whether every part now has one. Completing the selections is a
// Quoted to Quoted transition, so the status is left untouched.
func (q *Quotation) RecordSelections(selectedCount, partCount int) (bool, error) {
	if _, err := q.status.Next(EventSelectionsCompleted); err != nil {
		return false, err
	}
	return partCount > 0 && selectedCount == partCount, nil
}

// MarkPaid moves a Quoted quotation to Paid when payment equals selectedTotal
// exactly, currency included.
func (q *Quotation) MarkPaid(payment, selectedTotal kernel.Money, now time.Time) error {
	next, err := q.status.Next(EventPaymentConfirmed)
	if err != nil {
		return err
	}
	if !payment.Equal(selectedTotal) {
		return &PaymentAmountMismatchError{Expected: selectedTotal, Received: payment}
	}

	q.apply(next, now)
	return nil
}

// Cancel moves a Draft or Quoted quotation to Cancelled.
func (q *Quotation) Cancel(now time.Time) error {
	next, err := q.status.Next(EventCancellationRequested)
	if err != nil {
		return err
	}

	q.apply(next, now)
	return nil
}

func (q *Quotation) apply(next Status, now time.Time) {
	q.status = next
	q.updatedAt = now
}
