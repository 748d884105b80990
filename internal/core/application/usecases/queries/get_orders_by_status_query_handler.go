package queries

import (
	"context"

	"marketplace/internal/adapters/out/postgres/storeerr"

	"gorm.io/gorm"
)

// GetOrdersByStatusQueryHandler reads order views straight from the orders table.
type GetOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByStatusQueryHandler creates a handler reading orders through db.
func NewGetOrdersByStatusQueryHandler(db *gorm.DB) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{db: db}
}

// Handle returns the orders ordered by deadline, then id.
func (h GetOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStatusQuery,
) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+orderViewColumns+`
		FROM orders
		WHERE status = ?
		ORDER BY deadline, id
	`, int(query.Status())).Rows()
	if err != nil {
		return nil, storeerr.Classify("list orders by status", err)
	}

	return scanOrderViews("list orders by status", rows)
}
