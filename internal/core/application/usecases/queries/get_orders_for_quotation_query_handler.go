package queries

import (
	"context"

	"marketplace/internal/adapters/out/postgres/storeerr"

	"gorm.io/gorm"
)

// GetOrdersForQuotationQueryHandler reads the orders of a quotation. An unpaid
// or unknown quotation has none, which is not an error.
type GetOrdersForQuotationQueryHandler struct {
	db *gorm.DB
}

func NewGetOrdersForQuotationQueryHandler(db *gorm.DB) GetOrdersForQuotationQueryHandler {
	return GetOrdersForQuotationQueryHandler{db: db}
}

// Handle returns the orders in part order.
func (h GetOrdersForQuotationQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersForQuotationQuery,
) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+orderViewColumns+`
		FROM orders
		WHERE quotation_id = ?
		ORDER BY part_id
	`, query.QuotationID().Bytes()).Rows()
	if err != nil {
		return nil, storeerr.Classify("list orders for quotation", err)
	}

	return scanOrderViews("list orders for quotation", rows)
}
