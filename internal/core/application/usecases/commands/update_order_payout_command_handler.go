package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// UpdateOrderPayoutCommandHandler stores a new payout. Payouts may change at
// any status, and the write leaves the stored status alone, so it neither
// races with nor overwrites a concurrent advance.
type UpdateOrderPayoutCommandHandler struct {
	txFactory TransactionFactory
	orders    ports.OrderRepository
	clock     Clock
}

// NewUpdateOrderPayoutCommandHandler creates a handler for payout updates.
func NewUpdateOrderPayoutCommandHandler(
	txFactory TransactionFactory,
	orders ports.OrderRepository,
	clock Clock,
) UpdateOrderPayoutCommandHandler {
	return UpdateOrderPayoutCommandHandler{
		txFactory: txFactory,
		orders:    orders,
		clock:     clock,
	}
}

// Handle records the payout and returns the updated order.
func (h *UpdateOrderPayoutCommandHandler) Handle(ctx context.Context, cmd UpdateOrderPayoutCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := utcNow(h.clock)
	if err = o.SetPayout(cmd.Payout(), now); err != nil {
		return nil, err
	}

	tx := h.txFactory.Create()
	tx.AddItem(ports.SetOrderPayout{OrderID: o.ID(), Payout: cmd.Payout(), At: now})
	if err = tx.Execute(ctx); err != nil {
		if errors.Is(err, errs.ErrConditionalCheckFailed) {
			return nil, NewConflictError("update order payout", err)
		}
		return nil, err
	}

	return o, nil
}
