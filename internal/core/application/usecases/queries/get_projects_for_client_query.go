package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// MaxProjectsPageSize bounds one page of a client's projects. It is also the
// page size used when none is requested.
const MaxProjectsPageSize = 100

var ErrGetProjectsForClientQueryIsNotConstructed = errors.New(
	"GetProjectsForClientQuery must be created via NewGetProjectsForClientQuery constructor",
)

// GetProjectsForClientQuery lists the projects of one customer, oldest first,
// one page at a time.
//
// Example:
//
//	query, _ := NewGetProjectsForClientQuery(customerID, 0, nil)
//	page, err := handler.Handle(ctx, query)
//	for page.Next != nil {
//	    query, _ = NewGetProjectsForClientQuery(customerID, 0, page.Next)
//	    page, err = handler.Handle(ctx, query)
//	}
type GetProjectsForClientQuery struct {
	customerID kernel.UUID
	limit      int
	after      *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetProjectsForClientQuery builds the query. limit 0 selects
// MaxProjectsPageSize. after is the cursor returned with the previous page.
func NewGetProjectsForClientQuery(customerID kernel.UUID, limit int, after *kernel.UUID) (GetProjectsForClientQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetProjectsForClientQuery{}, err
	}
	if limit == 0 {
		limit = MaxProjectsPageSize
	}
	if limit < 1 || limit > MaxProjectsPageSize {
		return GetProjectsForClientQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxProjectsPageSize)
	}

	query := GetProjectsForClientQuery{customerID: customerID, limit: limit, guard: guard.NewConstructorGuard()}
	if after != nil {
		if err := after.Validate(); err != nil {
			return GetProjectsForClientQuery{}, err
		}
		cursor := *after
		query.after = &cursor
	}
	return query, nil
}

func (q GetProjectsForClientQuery) Validate() error {
	return q.guard.Validate(ErrGetProjectsForClientQueryIsNotConstructed)
}

func (q GetProjectsForClientQuery) CustomerID() kernel.UUID { return q.customerID }
func (q GetProjectsForClientQuery) Limit() int              { return q.limit }

// After returns the cursor, or nil for the first page.
func (q GetProjectsForClientQuery) After() *kernel.UUID {
	if q.after == nil {
		return nil
	}
	after := *q.after
	return &after
}
