package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/core/domain/model/quotation"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// SelectPartQuoteResult is the outcome of a selection.
type SelectPartQuoteResult struct {
	Part *part.Part

	// SelectionComplete is true once every part of the quotation has a selected quote.
	SelectionComplete bool
}

// SelectPartQuoteCommandHandler records the selected quote of a part. The
// last selection wins. The commit holds only while the quotation is Quoted.
type SelectPartQuoteCommandHandler struct {
	txFactory  TransactionFactory
	quotations ports.QuotationRepository
	parts      ports.PartRepository
	clock      Clock
}

// NewSelectPartQuoteCommandHandler creates a handler for quote selection.
func NewSelectPartQuoteCommandHandler(
	txFactory TransactionFactory,
	quotations ports.QuotationRepository,
	parts ports.PartRepository,
	clock Clock,
) SelectPartQuoteCommandHandler {
	return SelectPartQuoteCommandHandler{
		txFactory:  txFactory,
		quotations: quotations,
		parts:      parts,
		clock:      clock,
	}
}

// Handle selects cmd.PartQuoteID for the part and reports whether every part
// of the quotation now has a selection.
func (h *SelectPartQuoteCommandHandler) Handle(
	ctx context.Context,
	cmd SelectPartQuoteCommand,
) (SelectPartQuoteResult, error) {
	if err := cmd.Validate(); err != nil {
		return SelectPartQuoteResult{}, err
	}

	var (
		q     *quotation.Quotation
		parts []*part.Part
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		q, err = h.quotations.Get(gctx, cmd.QuotationID())
		return err
	})
	g.Go(func() (err error) {
		parts, err = h.parts.ListByQuotation(gctx, cmd.QuotationID())
		return err
	})
	if err := g.Wait(); err != nil {
		return SelectPartQuoteResult{}, err
	}

	if _, err := q.RecordSelections(0, len(parts)); err != nil {
		return SelectPartQuoteResult{}, err
	}

	var target *part.Part
	for _, p := range parts {
		if p.ID().IsEqual(cmd.PartID()) {
			target = p
			break
		}
	}
	if target == nil {
		return SelectPartQuoteResult{}, errs.NewObjectNotFoundError("part", cmd.PartID().String())
	}

	now := utcNow(h.clock)
	patch, err := target.SelectQuote(cmd.PartQuoteID(), now)
	if err != nil {
		return SelectPartQuoteResult{}, err
	}

	selected := 0
	for _, p := range parts {
		if p.SelectedQuoteID() != nil {
			selected++
		}
	}
	complete, err := q.RecordSelections(selected, len(parts))
	if err != nil {
		return SelectPartQuoteResult{}, err
	}

	tx := h.txFactory.Create()
	tx.AddItems(
		ports.CheckQuotationStatus{QuotationID: q.ID(), Allowed: []quotation.Status{quotation.Quoted}},
		ports.UpdatePart{Patch: patch, At: now},
	)
	if err = tx.Execute(ctx); err != nil {
		if errors.Is(err, errs.ErrConditionalCheckFailed) {
			return SelectPartQuoteResult{}, NewConflictError("select part quote", err)
		}
		return SelectPartQuoteResult{}, err
	}

	return SelectPartQuoteResult{Part: target, SelectionComplete: complete}, nil
}
