// Package ports defines the persistence contracts of the quotation workflow.
// Repositories are read-only: every write goes through a Transaction so that
// related changes become visible together or not at all.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/core/domain/model/project"
	"marketplace/internal/core/domain/model/quotation"
)

// ProjectRepository reads project aggregates.
type ProjectRepository interface {
	// Get returns errs.ObjectNotFoundError when no project has the id.
	Get(ctx context.Context, id kernel.UUID) (*project.Project, error)
}

// QuotationRepository reads quotation aggregates.
type QuotationRepository interface {
	// Get returns errs.ObjectNotFoundError when no quotation has the id.
	Get(ctx context.Context, id kernel.UUID) (*quotation.Quotation, error)

	// ListByStatus returns quotations in the given status, oldest first.
	ListByStatus(ctx context.Context, status quotation.Status) ([]*quotation.Quotation, error)
}

// PartRepository reads parts together with all of their quotes.
type PartRepository interface {
	// Get returns the part only when it belongs to quotationID.
	Get(ctx context.Context, quotationID, partID kernel.UUID) (*part.Part, error)

	// ListByQuotation returns the parts of a quotation in creation order.
	ListByQuotation(ctx context.Context, quotationID kernel.UUID) ([]*part.Part, error)
}

// OrderRepository reads manufacturing orders.
type OrderRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListByQuotation returns the orders materialized from a quotation.
	ListByQuotation(ctx context.Context, quotationID kernel.UUID) ([]*order.Order, error)

	// ListByStatus returns orders in the given status ordered by deadline.
	ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
