package queries

import (
	"context"

	"marketplace/internal/adapters/out/postgres/storeerr"

	"gorm.io/gorm"
)

type GetQuotationsByStatusQueryHandler struct {
	db *gorm.DB
}

func NewGetQuotationsByStatusQueryHandler(db *gorm.DB) GetQuotationsByStatusQueryHandler {
	return GetQuotationsByStatusQueryHandler{db: db}
}

// Handle returns the quotations in query.Status, oldest first.
func (h GetQuotationsByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetQuotationsByStatusQuery,
) ([]QuotationSummaryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+quotationSummaryColumns+`
		FROM quotations q
		WHERE q.status = ?
		ORDER BY q.id
	`, int(query.Status())).Rows()
	if err != nil {
		return nil, storeerr.Classify("list quotations by status", err)
	}

	return scanQuotationSummaries("list quotations by status", rows)
}
