package part

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// QuoteValidity is how long a part quote can be selected and paid after it is issued.
const QuoteValidity = 30 * 24 * time.Hour

var ErrPartQuoteIsNotConstructed = errors.New("PartQuote must be created via Part.AttachQuote or RestorePartQuote")

// PartQuote is one persisted priced fulfilment option of a part.
type PartQuote struct {
	id           kernel.UUID
	partID       kernel.UUID
	quotationID  kernel.UUID
	price        kernel.Money
	leadTimeDays int
	validUntil   time.Time
	createdAt    time.Time

	guard guard.ConstructorGuard
}

// RestorePartQuote rebuilds a part quote from persisted state.
func RestorePartQuote(
	id, partID, quotationID kernel.UUID,
	price kernel.Money,
	leadTimeDays int,
	validUntil, createdAt time.Time,
) (*PartQuote, error) {
	if err := errors.Join(id.Validate(), partID.Validate(), quotationID.Validate(), price.Validate()); err != nil {
		return nil, err
	}

	return &PartQuote{
		id:           id,
		partID:       partID,
		quotationID:  quotationID,
		price:        price,
		leadTimeDays: leadTimeDays,
		validUntil:   validUntil,
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q *PartQuote) Validate() error {
	if q == nil {
		return ErrPartQuoteIsNotConstructed
	}
	return q.guard.Validate(ErrPartQuoteIsNotConstructed)
}

func (q *PartQuote) ID() kernel.UUID          { return q.id }
func (q *PartQuote) PartID() kernel.UUID      { return q.partID }
func (q *PartQuote) QuotationID() kernel.UUID { return q.quotationID }
func (q *PartQuote) Price() kernel.Money      { return q.price }
func (q *PartQuote) LeadTimeDays() int        { return q.leadTimeDays }
func (q *PartQuote) ValidUntil() time.Time    { return q.validUntil }
func (q *PartQuote) CreatedAt() time.Time     { return q.createdAt }

// IsExpired reports whether the quote can no longer be accepted at now.
func (q *PartQuote) IsExpired(now time.Time) bool {
	return now.After(q.validUntil)
}
