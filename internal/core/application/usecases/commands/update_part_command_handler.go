package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/core/domain/model/quotation"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// UpdatePartCommandHandler applies an UpdatablePart patch while the quotation
// is still Draft or Quoted.
type UpdatePartCommandHandler struct {
	txFactory  TransactionFactory
	quotations ports.QuotationRepository
	parts      ports.PartRepository
	clock      Clock
}

// NewUpdatePartCommandHandler creates a handler for file replacement.
func NewUpdatePartCommandHandler(
	txFactory TransactionFactory,
	quotations ports.QuotationRepository,
	parts ports.PartRepository,
	clock Clock,
) UpdatePartCommandHandler {
	return UpdatePartCommandHandler{
		txFactory:  txFactory,
		quotations: quotations,
		parts:      parts,
		clock:      clock,
	}
}

// Handle replaces the part's file and returns the updated part.
func (h *UpdatePartCommandHandler) Handle(ctx context.Context, cmd UpdatePartCommand) (*part.Part, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q, err := h.quotations.Get(ctx, cmd.QuotationID())
	if err != nil {
		return nil, err
	}
	if q.Status().IsTerminal() {
		return nil, &QuotationNotEditableError{QuotationID: q.ID(), Status: q.Status()}
	}

	p, err := h.parts.Get(ctx, q.ID(), cmd.PartID())
	if err != nil {
		return nil, err
	}

	now := utcNow(h.clock)
	patch, err := p.ReplaceFile(cmd.File(), now)
	if err != nil {
		return nil, err
	}

	tx := h.txFactory.Create()
	tx.AddItems(
		ports.CheckQuotationStatus{QuotationID: q.ID(), Allowed: []quotation.Status{quotation.Draft, quotation.Quoted}},
		ports.UpdatePart{Patch: patch, At: now},
	)
	if err = tx.Execute(ctx); err != nil {
		if errors.Is(err, errs.ErrConditionalCheckFailed) {
			return nil, NewConflictError("update part", err)
		}
		return nil, err
	}

	return p, nil
}
