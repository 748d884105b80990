package commands

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/core/domain/model/quotation"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreatePartsAndQuotesCommandHandler creates the parts and quotes of a Draft
// quotation and moves it to Quoted in the same commit. Of two concurrent
// submissions to one quotation exactly one succeeds; the other fails with
// QuotationNotDraftError.
type CreatePartsAndQuotesCommandHandler struct {
	txFactory  TransactionFactory
	quotations ports.QuotationRepository
	clock      Clock
}

// NewCreatePartsAndQuotesCommandHandler creates a handler for supplier part submissions.
func NewCreatePartsAndQuotesCommandHandler(
	txFactory TransactionFactory,
	quotations ports.QuotationRepository,
	clock Clock,
) CreatePartsAndQuotesCommandHandler {
	return CreatePartsAndQuotesCommandHandler{
		txFactory:  txFactory,
		quotations: quotations,
		clock:      clock,
	}
}

// Handle returns the created parts, with their quotes, in input order.
func (h *CreatePartsAndQuotesCommandHandler) Handle(
	ctx context.Context,
	cmd CreatePartsAndQuotesCommand,
) ([]*part.Part, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q, err := h.quotations.Get(ctx, cmd.QuotationID())
	if err != nil {
		return nil, err
	}
	if !q.ProjectID().IsEqual(cmd.ProjectID()) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"project_id",
			fmt.Errorf("quotation %s belongs to project %s", q.ID(), q.ProjectID()),
		)
	}
	if q.Status() != quotation.Draft {
		return nil, &QuotationNotDraftError{QuotationID: q.ID(), Status: q.Status()}
	}

	now := utcNow(h.clock)
	tx := h.txFactory.Create()
	parts := make([]*part.Part, 0, len(cmd.Submissions()))
	quoted := 0

	for _, s := range cmd.Submissions() {
		p, err := part.NewPart(cmd.ClientID(), q.ProjectID(), q.ID(), s.File, now)
		if err != nil {
			return nil, err
		}
		tx.AddItem(ports.CreatePart{Part: p})

		for _, option := range s.PriceOptions {
			pq, err := p.AttachQuote(option, now)
			if err != nil {
				return nil, err
			}
			tx.AddItem(ports.CreatePartQuote{Quote: pq})
		}
		if p.HasQuotes() {
			quoted++
		}
		parts = append(parts, p)
	}

	from := q.Status()
	if err = q.MarkQuoted(len(parts), quoted, now); err != nil {
		return nil, err
	}
	tx.AddItem(ports.UpdateQuotationStatus{QuotationID: q.ID(), From: from, To: q.Status(), At: now})

	if err = tx.Execute(ctx); err != nil {
		if errors.Is(err, errs.ErrConditionalCheckFailed) {
			return nil, h.notDraft(ctx, q)
		}
		return nil, err
	}

	return parts, nil
}

// notDraft reports the status that won the race, when it can be read.
func (h *CreatePartsAndQuotesCommandHandler) notDraft(ctx context.Context, q *quotation.Quotation) error {
	current, err := h.quotations.Get(ctx, q.ID())
	if err != nil {
		return &QuotationNotDraftError{QuotationID: q.ID(), Status: quotation.Unknown}
	}
	return &QuotationNotDraftError{QuotationID: current.ID(), Status: current.Status()}
}
