package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrdersForQuotationQueryIsNotConstructed = errors.New(
	"GetOrdersForQuotationQuery must be created via NewGetOrdersForQuotationQuery constructor",
)

// GetOrdersForQuotationQuery lists the orders materialized from one paid quotation.
type GetOrdersForQuotationQuery struct {
	quotationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrdersForQuotationQuery(quotationID kernel.UUID) (GetOrdersForQuotationQuery, error) {
	if err := quotationID.Validate(); err != nil {
		return GetOrdersForQuotationQuery{}, err
	}

	return GetOrdersForQuotationQuery{quotationID: quotationID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrdersForQuotationQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersForQuotationQueryIsNotConstructed)
}

func (q GetOrdersForQuotationQuery) QuotationID() kernel.UUID {
	return q.quotationID
}
