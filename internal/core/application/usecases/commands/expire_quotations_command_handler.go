package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/quotation"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// ExpireQuotationsCommandHandler cancels expired Quoted quotations through
// CancelQuotationCommandHandler, so a payment committed meanwhile wins and the
// quotation is skipped.
type ExpireQuotationsCommandHandler struct {
	quotations ports.QuotationRepository
	parts      ports.PartRepository
	cancel     CancelQuotationCommandHandler
	clock      Clock
}

// NewExpireQuotationsCommandHandler creates the handler run by the expiry job.
func NewExpireQuotationsCommandHandler(
	quotations ports.QuotationRepository,
	parts ports.PartRepository,
	cancel CancelQuotationCommandHandler,
	clock Clock,
) ExpireQuotationsCommandHandler {
	return ExpireQuotationsCommandHandler{
		quotations: quotations,
		parts:      parts,
		cancel:     cancel,
		clock:      clock,
	}
}

// Handle returns the ids of the quotations it cancelled.
func (h *ExpireQuotationsCommandHandler) Handle(ctx context.Context, cmd ExpireQuotationsCommand) ([]kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	quoted, err := h.quotations.ListByStatus(ctx, quotation.Quoted)
	if err != nil {
		return nil, err
	}

	now := utcNow(h.clock)
	cancelled := make([]kernel.UUID, 0)
	for _, q := range quoted {
		parts, err := h.parts.ListByQuotation(ctx, q.ID())
		if err != nil {
			return cancelled, err
		}
		if !services.QuotesExpired(parts, now) {
			continue
		}

		cancelCmd, err := NewCancelQuotationCommand(q.ID())
		if err != nil {
			return cancelled, err
		}
		if _, err = h.cancel.Handle(ctx, cancelCmd); err != nil {
			if errors.Is(err, ErrConflict) || errors.Is(err, quotation.ErrInvalidTransition) {
				continue
			}
			return cancelled, err
		}
		cancelled = append(cancelled, q.ID())
	}

	return cancelled, nil
}
