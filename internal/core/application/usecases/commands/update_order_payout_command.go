package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateOrderPayoutCommandIsNotConstructed = errors.New(
	"UpdateOrderPayoutCommand must be created via NewUpdateOrderPayoutCommand constructor",
)

// UpdateOrderPayoutCommand sets what the manufacturer is paid for an order.
// It is an administrative operation.
type UpdateOrderPayoutCommand struct {
	orderID kernel.UUID
	payout  kernel.Money

	guard guard.ConstructorGuard
}

func NewUpdateOrderPayoutCommand(orderID kernel.UUID, payout kernel.Money) (UpdateOrderPayoutCommand, error) {
	if err := errors.Join(orderID.Validate(), payout.Validate()); err != nil {
		return UpdateOrderPayoutCommand{}, err
	}

	return UpdateOrderPayoutCommand{
		orderID: orderID,
		payout:  payout,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderPayoutCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderPayoutCommandIsNotConstructed)
}

func (c UpdateOrderPayoutCommand) OrderID() kernel.UUID { return c.orderID }
func (c UpdateOrderPayoutCommand) Payout() kernel.Money { return c.payout }
