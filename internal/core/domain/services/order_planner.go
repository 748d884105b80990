package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/core/domain/model/quotation"
)

// ErrNoSelection is the sentinel wrapped by NoSelectionError.
var ErrNoSelection = errors.New("part has no selected quote")

// NoSelectionError lists the parts that still lack a selected quote.
type NoSelectionError struct {
	PartIDs []kernel.UUID
}

func (e *NoSelectionError) Error() string {
	if len(e.PartIDs) == 0 {
		return fmt.Sprintf("%s: quotation has no parts", ErrNoSelection)
	}
	ids := make([]string, 0, len(e.PartIDs))
	for _, id := range e.PartIDs {
		ids = append(ids, id.String())
	}
	return fmt.Sprintf("%s: %s", ErrNoSelection, strings.Join(ids, ", "))
}

func (e *NoSelectionError) Unwrap() error {
	return ErrNoSelection
}

// OrderPlanner turns the selected part quotes of a quotation into orders.
//
// Example usage:
//
//	planner := services.NewOrderPlanner()
//	orders, err := planner.Plan(q, parts, payment, today, now)
//	var mismatch *quotation.PaymentAmountMismatchError
//	if errors.As(err, &mismatch) {
//	    // payment rejected, nothing changed
//	}
type OrderPlanner struct{}

func NewOrderPlanner() OrderPlanner {
	return OrderPlanner{}
}

// SelectedQuotes returns the selected quote of every part, in part order, or
// NoSelectionError naming each part without a selection.
func (OrderPlanner) SelectedQuotes(parts []*part.Part) ([]*part.PartQuote, error) {
	if len(parts) == 0 {
		return nil, &NoSelectionError{}
	}

	var (
		quotes  = make([]*part.PartQuote, 0, len(parts))
		missing []kernel.UUID
	)
	for _, p := range parts {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		q, ok := p.SelectedQuote()
		if !ok {
			missing = append(missing, p.ID())
			continue
		}
		quotes = append(quotes, q)
	}
	if len(missing) > 0 {
		return nil, &NoSelectionError{PartIDs: missing}
	}

	return quotes, nil
}

// Subtotal sums the selected quote prices of parts. Every part must have a
// selection and all prices must share one currency.
func (p OrderPlanner) Subtotal(parts []*part.Part) (kernel.Money, error) {
	quotes, err := p.SelectedQuotes(parts)
	if err != nil {
		return kernel.Money{}, err
	}

	total, err := kernel.ZeroMoney(quotes[0].Price().Currency())
	if err != nil {
		return kernel.Money{}, err
	}
	for _, q := range quotes {
		if total, err = total.Add(q.Price()); err != nil {
			return kernel.Money{}, err
		}
	}

	return total, nil
}

// Plan checks payment against the selected subtotal, marks q as Paid and
// returns one Created order per part. Each deadline is today plus the lead
// time of the selected quote, counted in workdays.
//
// On error q is left unchanged.
func (p OrderPlanner) Plan(
	q *quotation.Quotation,
	parts []*part.Part,
	payment kernel.Money,
	today time.Time,
	now time.Time,
) ([]*order.Order, error) {
	if err := errors.Join(q.Validate(), payment.Validate()); err != nil {
		return nil, err
	}
	// Only a Quoted quotation can be paid, whatever its parts look like.
	if _, err := q.Status().Next(quotation.EventPaymentConfirmed); err != nil {
		return nil, err
	}

	subtotal, err := p.Subtotal(parts)
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(parts))
	for _, pt := range parts {
		selected, _ := pt.SelectedQuote()
		o, err := order.NewOrder(
			pt.ClientID(),
			q.ProjectID(),
			q.ID(),
			pt.ID(),
			selected.ID(),
			selected.Price(),
			kernel.AddWorkdays(today, selected.LeadTimeDays()),
			now,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	if err := q.MarkPaid(payment, subtotal, now); err != nil {
		return nil, err
	}

	return orders, nil
}
