package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// AdvanceOrderStatusCommandHandler moves an order one step forward. Two
// concurrent advances of the same order cannot both succeed. Only the status
// is written, so a payout stored after the order was read is kept.
type AdvanceOrderStatusCommandHandler struct {
	txFactory TransactionFactory
	orders    ports.OrderRepository
	clock     Clock
}

// NewAdvanceOrderStatusCommandHandler creates a handler that moves orders one
// step along their fulfilment lifecycle.
func NewAdvanceOrderStatusCommandHandler(
	txFactory TransactionFactory,
	orders ports.OrderRepository,
	clock Clock,
) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		txFactory: txFactory,
		orders:    orders,
		clock:     clock,
	}
}

// Handle advances the order and returns it in its new status.
func (h *AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := utcNow(h.clock)
	previous, err := o.Advance(now)
	if err != nil {
		return nil, err
	}

	tx := h.txFactory.Create()
	tx.AddItem(ports.UpdateOrderStatus{OrderID: o.ID(), From: previous, To: o.Status(), At: now})
	if err = tx.Execute(ctx); err != nil {
		if errors.Is(err, errs.ErrConditionalCheckFailed) {
			return nil, NewConflictError("advance order status", err)
		}
		return nil, err
	}

	return o, nil
}
