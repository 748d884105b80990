package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrdersByStatusQueryIsNotConstructed = errors.New(
	"GetOrdersByStatusQuery must be created via NewGetOrdersByStatusQuery constructor",
)

// GetOrdersByStatusQuery lists orders in one fulfilment status, earliest
// deadline first. It backs the administrative order listing.
//
// Example:
//
//	query, err := NewGetOrdersByStatusQuery(order.InProgress)
//	if err != nil {
//	    return err
//	}
//	views, err := handler.Handle(ctx, query)
type GetOrdersByStatusQuery struct {
	status order.Status

	guard guard.ConstructorGuard
}

func NewGetOrdersByStatusQuery(status order.Status) (GetOrdersByStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return GetOrdersByStatusQuery{}, err
	}

	return GetOrdersByStatusQuery{status: status, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStatusQueryIsNotConstructed)
}

func (q GetOrdersByStatusQuery) Status() order.Status {
	return q.status
}
