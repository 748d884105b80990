package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/quotation"
	"marketplace/internal/pkg/guard"
)

var ErrGetQuotationsByStatusQueryIsNotConstructed = errors.New(
	"GetQuotationsByStatusQuery must be created via NewGetQuotationsByStatusQuery constructor",
)

// GetQuotationsByStatusQuery lists every quotation in one status, oldest
// first. It backs the administrative quotation listing.
type GetQuotationsByStatusQuery struct {
	status quotation.Status

	guard guard.ConstructorGuard
}

func NewGetQuotationsByStatusQuery(status quotation.Status) (GetQuotationsByStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return GetQuotationsByStatusQuery{}, err
	}

	return GetQuotationsByStatusQuery{status: status, guard: guard.NewConstructorGuard()}, nil
}

func (q GetQuotationsByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetQuotationsByStatusQueryIsNotConstructed)
}

func (q GetQuotationsByStatusQuery) Status() quotation.Status {
	return q.status
}
