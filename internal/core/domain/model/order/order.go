package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the manufacturing order of one part of a paid quotation.
//
// Order follows these invariants:
//   - Its id is kernel.DeriveUUID(quotationID, partID)
//   - Payment is a constructed Money
//   - Deadline is a calendar date (midnight UTC)
//   - Payout, when present, is in the payment currency
//   - Status only advances forward
type Order struct {
	id          kernel.UUID
	clientID    kernel.UUID
	projectID   kernel.UUID
	quotationID kernel.UUID
	partID      kernel.UUID
	partQuoteID kernel.UUID

	// payment is the price of the selected part quote at payment time
	payment kernel.Money

	// payout is what the manufacturer receives, set by an administrator
	payout *kernel.Money

	deadline  time.Time
	status    Status
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an order in Created status for one part of a paid quotation.
//
// The order id is derived from quotationID and partID, so calling NewOrder
// twice for the same pair yields orders with equal ids.
//
// Example:
//
//	deadline := kernel.AddWorkdays(today, quote.LeadTimeDays())
//	o, err := order.NewOrder(clientID, projectID, quotationID, partID, quote.ID(), quote.Price(), deadline, now)
func NewOrder(
	clientID, projectID, quotationID, partID, partQuoteID kernel.UUID,
	payment kernel.Money,
	deadline time.Time,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(quotationID.Validate(), partID.Validate()); err != nil {
		return nil, err
	}

	return build(
		kernel.DeriveUUID(quotationID, partID),
		clientID, projectID, quotationID, partID, partQuoteID,
		payment, nil, deadline, Created, now, now,
	)
}

// RestoreOrder rebuilds an order from persisted state.
func RestoreOrder(
	id, clientID, projectID, quotationID, partID, partQuoteID kernel.UUID,
	payment kernel.Money,
	payout *kernel.Money,
	deadline time.Time,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	return build(
		id, clientID, projectID, quotationID, partID, partQuoteID,
		payment, payout, deadline, status, createdAt, updatedAt,
	)
}

func build(
	id, clientID, projectID, quotationID, partID, partQuoteID kernel.UUID,
	payment kernel.Money,
	payout *kernel.Money,
	deadline time.Time,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		clientID.Validate(),
		projectID.Validate(),
		quotationID.Validate(),
		partID.Validate(),
		partQuoteID.Validate(),
		status.Validate(),
		o.setPayment(payment),
		o.setDeadline(deadline),
	); err != nil {
		return nil, err
	}
	if payout != nil {
		if err := o.setPayout(*payout); err != nil {
			return nil, err
		}
	}

	o.id = id
	o.clientID = clientID
	o.projectID = projectID
	o.quotationID = quotationID
	o.partID = partID
	o.partQuoteID = partQuoteID

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID          { return o.id }
func (o *Order) ClientID() kernel.UUID    { return o.clientID }
func (o *Order) ProjectID() kernel.UUID   { return o.projectID }
func (o *Order) QuotationID() kernel.UUID { return o.quotationID }
func (o *Order) PartID() kernel.UUID      { return o.partID }
func (o *Order) PartQuoteID() kernel.UUID { return o.partQuoteID }
func (o *Order) Payment() kernel.Money    { return o.payment }
func (o *Order) Deadline() time.Time      { return o.deadline }
func (o *Order) Status() Status           { return o.status }
func (o *Order) CreatedAt() time.Time     { return o.createdAt }
func (o *Order) UpdatedAt() time.Time     { return o.updatedAt }

// Payout returns the manufacturer payout, or nil when none has been set.
func (o *Order) Payout() *kernel.Money {
	if o.payout == nil {
		return nil
	}
	payout := *o.payout
	return &payout
}

// Advance moves the order one step forward in its lifecycle.
// It returns the status the order had before the call.
func (o *Order) Advance(now time.Time) (Status, error) {
	previous := o.status
	next, err := o.status.Advance()
	if err != nil {
		return previous, err
	}

	o.status = next
	o.updatedAt = now
	return previous, nil
}

// SetPayout records the manufacturer payout. It may be changed at any status.
func (o *Order) SetPayout(payout kernel.Money, now time.Time) error {
	if err := o.setPayout(payout); err != nil {
		return err
	}
	o.updatedAt = now
	return nil
}

func (o *Order) setPayment(payment kernel.Money) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	o.payment = payment
	return nil
}

func (o *Order) setPayout(payout kernel.Money) error {
	if err := payout.Validate(); err != nil {
		return err
	}
	if payout.Currency() != o.payment.Currency() {
		return errs.NewValueIsInvalidErrorWithCause(
			"payout currency",
			fmt.Errorf("%w: %s and %s", kernel.ErrCurrencyMismatch, payout.Currency(), o.payment.Currency()),
		)
	}
	p := payout
	o.payout = &p
	return nil
}

func (o *Order) setDeadline(deadline time.Time) error {
	if deadline.IsZero() {
		return errs.NewValueIsRequiredError("deadline")
	}
	y, m, d := deadline.Date()
	o.deadline = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return nil
}
