package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/quotation"
	"marketplace/internal/pkg/guard"
)

var ErrGetQuotationQueryIsNotConstructed = errors.New(
	"GetQuotationQuery must be created via NewGetQuotationQuery constructor",
)

// GetQuotationQuery reads a quotation with its parts and quotes.
//
// Example:
//
//	query, _ := NewGetQuotationQuery(quotationID)
//	view, err := handler.Handle(ctx, query)
//	if err == nil && view.Subtotal != nil {
//	    fmt.Printf("to pay: %s\n", view.Subtotal)
//	}
type GetQuotationQuery struct {
	quotationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetQuotationQuery(quotationID kernel.UUID) (GetQuotationQuery, error) {
	if err := quotationID.Validate(); err != nil {
		return GetQuotationQuery{}, err
	}

	return GetQuotationQuery{quotationID: quotationID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetQuotationQuery) Validate() error {
	return q.guard.Validate(ErrGetQuotationQueryIsNotConstructed)
}

func (q GetQuotationQuery) QuotationID() kernel.UUID {
	return q.quotationID
}

// QuotationView is the customer facing state of a quotation.
type QuotationView struct {
	ID        kernel.UUID
	ProjectID kernel.UUID
	Status    quotation.Status
	Parts     []PartView

	// SelectionComplete is true once every part has a selected quote.
	SelectionComplete bool

	// Subtotal is the amount to pay. It is set only when SelectionComplete is.
	Subtotal *kernel.Money

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PartView is one part of a QuotationView.
type PartView struct {
	ID              kernel.UUID
	FileName        string
	FileKey         string
	SelectedQuoteID *kernel.UUID
	Quotes          []PartQuoteView
}

// PartQuoteView is one price option of a part.
type PartQuoteView struct {
	ID           kernel.UUID
	Price        kernel.Money
	LeadTimeDays int
	ValidUntil   time.Time
	Expired      bool
}
