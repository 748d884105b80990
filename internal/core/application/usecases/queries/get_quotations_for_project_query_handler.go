package queries

import (
	"context"

	"marketplace/internal/adapters/out/postgres/storeerr"

	"gorm.io/gorm"
)

// GetQuotationsForProjectQueryHandler lists quotations through their project,
// so a client only ever sees quotations of its own projects.
type GetQuotationsForProjectQueryHandler struct {
	db *gorm.DB
}

func NewGetQuotationsForProjectQueryHandler(db *gorm.DB) GetQuotationsForProjectQueryHandler {
	return GetQuotationsForProjectQueryHandler{db: db}
}

// Handle returns the quotations oldest first. A project of another client
// lists nothing.
func (h GetQuotationsForProjectQueryHandler) Handle(
	ctx context.Context,
	query GetQuotationsForProjectQuery,
) ([]QuotationSummaryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+quotationSummaryColumns+`
		FROM quotations q
		JOIN projects p ON p.id = q.project_id
		WHERE q.project_id = ? AND p.customer_id = ?
		ORDER BY q.id
	`, query.ProjectID().Bytes(), query.ClientID().Bytes()).Rows()
	if err != nil {
		return nil, storeerr.Classify("list quotations for project", err)
	}

	return scanQuotationSummaries("list quotations for project", rows)
}
