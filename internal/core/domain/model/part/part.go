package part

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrPartIsNotConstructed = errors.New("Part must be created via NewPart or RestorePart")

	// ErrUnknownPriceOption is the sentinel wrapped by UnknownPriceOptionError.
	ErrUnknownPriceOption = errors.New("price option does not belong to part")

	ErrPartQuoteExpired = errors.New("part quote has expired")
)

// UnknownPriceOptionError reports a selection of a quote the part does not own.
type UnknownPriceOptionError struct {
	PartID      kernel.UUID
	PartQuoteID kernel.UUID
}

func (e *UnknownPriceOptionError) Error() string {
	return fmt.Sprintf("%s: part quote %s, part %s", ErrUnknownPriceOption, e.PartQuoteID, e.PartID)
}

func (e *UnknownPriceOptionError) Unwrap() error {
	return ErrUnknownPriceOption
}

// Part is one physical item submitted for manufacture, tied to a quotation.
type Part struct {
	id              kernel.UUID
	clientID        kernel.UUID
	projectID       kernel.UUID
	quotationID     kernel.UUID
	file            File
	selectedQuoteID *kernel.UUID
	quotes          []*PartQuote
	createdAt       time.Time
	updatedAt       time.Time

	guard guard.ConstructorGuard
}

// NewPart creates a part without quotes.
func NewPart(clientID, projectID, quotationID kernel.UUID, file File, now time.Time) (*Part, error) {
	if err := errors.Join(
		clientID.Validate(),
		projectID.Validate(),
		quotationID.Validate(),
		validateFile(file),
	); err != nil {
		return nil, err
	}

	return &Part{
		id:          kernel.NewUUID(),
		clientID:    clientID,
		projectID:   projectID,
		quotationID: quotationID,
		file:        file,
		createdAt:   now,
		updatedAt:   now,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestorePart rebuilds a part and its quotes from persisted state.
func RestorePart(
	id, clientID, projectID, quotationID kernel.UUID,
	file File,
	selectedQuoteID *kernel.UUID,
	quotes []*PartQuote,
	createdAt, updatedAt time.Time,
) (*Part, error) {
	if err := errors.Join(
		id.Validate(),
		clientID.Validate(),
		projectID.Validate(),
		quotationID.Validate(),
		validateFile(file),
	); err != nil {
		return nil, err
	}

	p := &Part{
		id:          id,
		clientID:    clientID,
		projectID:   projectID,
		quotationID: quotationID,
		file:        file,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		guard:       guard.NewConstructorGuard(),
	}
	for _, q := range quotes {
		if err := q.Validate(); err != nil {
			return nil, err
		}
		if !q.PartID().IsEqual(id) {
			return nil, &UnknownPriceOptionError{PartID: id, PartQuoteID: q.ID()}
		}
		p.quotes = append(p.quotes, q)
	}
	if selectedQuoteID != nil {
		if _, ok := p.findQuote(*selectedQuoteID); !ok {
			return nil, &UnknownPriceOptionError{PartID: id, PartQuoteID: *selectedQuoteID}
		}
		selected := *selectedQuoteID
		p.selectedQuoteID = &selected
	}

	return p, nil
}

func (p *Part) Validate() error {
	if p == nil {
		return ErrPartIsNotConstructed
	}
	return p.guard.Validate(ErrPartIsNotConstructed)
}

func (p *Part) ID() kernel.UUID          { return p.id }
func (p *Part) ClientID() kernel.UUID    { return p.clientID }
func (p *Part) ProjectID() kernel.UUID   { return p.projectID }
func (p *Part) QuotationID() kernel.UUID { return p.quotationID }
func (p *Part) File() File               { return p.file }
func (p *Part) CreatedAt() time.Time     { return p.createdAt }
func (p *Part) UpdatedAt() time.Time     { return p.updatedAt }

// SelectedQuoteID returns the id of the selected quote, or nil.
func (p *Part) SelectedQuoteID() *kernel.UUID {
	if p.selectedQuoteID == nil {
		return nil
	}
	id := *p.selectedQuoteID
	return &id
}

// Quotes returns the part's quotes in creation order.
func (p *Part) Quotes() []*PartQuote {
	quotes := make([]*PartQuote, len(p.quotes))
	copy(quotes, p.quotes)
	return quotes
}

// HasQuotes reports whether at least one priced option is attached.
func (p *Part) HasQuotes() bool {
	return len(p.quotes) > 0
}

// SelectedQuote returns the currently selected quote.
func (p *Part) SelectedQuote() (*PartQuote, bool) {
	if p.selectedQuoteID == nil {
		return nil, false
	}
	return p.findQuote(*p.selectedQuoteID)
}

// AttachQuote turns a price option into a PartQuote owned by the part,
// valid for QuoteValidity from now.
func (p *Part) AttachQuote(option PriceOption, now time.Time) (*PartQuote, error) {
	if err := option.Validate(); err != nil {
		return nil, err
	}

	quote := &PartQuote{
		id:           kernel.NewUUID(),
		partID:       p.id,
		quotationID:  p.quotationID,
		price:        option.Price(),
		leadTimeDays: option.LeadTimeDays(),
		validUntil:   now.Add(QuoteValidity),
		createdAt:    now,
		guard:        guard.NewConstructorGuard(),
	}
	p.quotes = append(p.quotes, quote)

	return quote, nil
}

// SelectQuote makes quoteID the part's only selected quote, replacing any
// previous selection, and returns the patch to persist. Expired quotes cannot
// be selected.
func (p *Part) SelectQuote(quoteID kernel.UUID, now time.Time) (UpdatablePart, error) {
	quote, ok := p.findQuote(quoteID)
	if !ok {
		return UpdatablePart{}, &UnknownPriceOptionError{PartID: p.id, PartQuoteID: quoteID}
	}
	if quote.IsExpired(now) {
		return UpdatablePart{}, fmt.Errorf("%w: valid until %s", ErrPartQuoteExpired, quote.ValidUntil().Format(time.RFC3339))
	}

	selected := quoteID
	p.selectedQuoteID = &selected
	p.updatedAt = now

	patched := quoteID
	return UpdatablePart{PartID: p.id, QuotationID: p.quotationID, SelectedPartQuoteID: &patched}, nil
}

// ReplaceFile swaps the part's model file and returns the patch to persist.
func (p *Part) ReplaceFile(file File, now time.Time) (UpdatablePart, error) {
	if err := validateFile(file); err != nil {
		return UpdatablePart{}, err
	}

	p.file = file
	p.updatedAt = now

	patched := file
	return UpdatablePart{PartID: p.id, QuotationID: p.quotationID, File: &patched}, nil
}

func (p *Part) findQuote(id kernel.UUID) (*PartQuote, bool) {
	for _, q := range p.quotes {
		if q.ID().IsEqual(id) {
			return q, true
		}
	}
	return nil, false
}

func validateFile(file File) error {
	if file.IsZero() {
		_, err := NewFile(file.Name(), file.Key())
		return err
	}
	return nil
}
