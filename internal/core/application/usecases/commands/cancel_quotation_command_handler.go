package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/quotation"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CancelQuotationCommandHandler moves a quotation to Cancelled. A payment or
// part submission committed in between makes it fail with ConflictError.
type CancelQuotationCommandHandler struct {
	txFactory  TransactionFactory
	quotations ports.QuotationRepository
	clock      Clock
}

// NewCancelQuotationCommandHandler creates a handler for client cancellations.
func NewCancelQuotationCommandHandler(
	txFactory TransactionFactory,
	quotations ports.QuotationRepository,
	clock Clock,
) CancelQuotationCommandHandler {
	return CancelQuotationCommandHandler{
		txFactory:  txFactory,
		quotations: quotations,
		clock:      clock,
	}
}

// Handle cancels the quotation and returns it. A Paid or already Cancelled
// quotation yields quotation.ErrInvalidTransition.
//
// Example:
//
//	handler := NewCancelQuotationCommandHandler(txFactory, quotations, clock)
//	cmd, err := NewCancelQuotationCommand(quotationID)
//	if err != nil {
//	    return fmt.Errorf("invalid command: %w", err)
//	}
//
//	q, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrConflict) {
//	    // reload and decide again
//	}
func (h *CancelQuotationCommandHandler) Handle(
	ctx context.Context,
	cmd CancelQuotationCommand,
) (*quotation.Quotation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q, err := h.quotations.Get(ctx, cmd.QuotationID())
	if err != nil {
		return nil, err
	}

	now := utcNow(h.clock)
	from := q.Status()
	if err = q.Cancel(now); err != nil {
		return nil, err
	}

	tx := h.txFactory.Create()
	tx.AddItem(ports.UpdateQuotationStatus{QuotationID: q.ID(), From: from, To: q.Status(), At: now})
	if err = tx.Execute(ctx); err != nil {
		if errors.Is(err, errs.ErrConditionalCheckFailed) {
			return nil, NewConflictError("cancel quotation", err)
		}
		return nil, err
	}

	return q, nil
}
