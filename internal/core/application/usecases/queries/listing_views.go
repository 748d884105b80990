package queries

import (
	"database/sql"
	"time"

	"marketplace/internal/adapters/out/postgres/storeerr"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/quotation"

	"github.com/google/uuid"
)

// ProjectView is the read model of a project in listings.
type ProjectView struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	Name       string
	IsLocked   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProjectPage is one page of a project listing. Next is the cursor of the
// following page and is nil on the last one.
type ProjectPage struct {
	Projects []ProjectView
	Next     *kernel.UUID
}

// QuotationSummaryView is a quotation without its parts.
type QuotationSummaryView struct {
	ID        kernel.UUID
	ProjectID kernel.UUID
	Status    quotation.Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

const quotationSummaryColumns = `
	q.id,
	q.project_id,
	q.status,
	q.created_at,
	q.updated_at`

func scanProjectViews(operation string, rows *sql.Rows) ([]ProjectView, error) {
	defer rows.Close()

	views := make([]ProjectView, 0)
	for rows.Next() {
		var (
			id, customerID       uuid.UUID
			name                 string
			isLocked             bool
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &customerID, &name, &isLocked, &createdAt, &updatedAt); err != nil {
			return nil, storeerr.Classify(operation, err)
		}

		view := ProjectView{Name: name, IsLocked: isLocked, CreatedAt: createdAt.UTC(), UpdatedAt: updatedAt.UTC()}
		var err error
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, storeerr.Classify(operation, err)
	}
	return views, nil
}

func scanQuotationSummaries(operation string, rows *sql.Rows) ([]QuotationSummaryView, error) {
	defer rows.Close()

	views := make([]QuotationSummaryView, 0)
	for rows.Next() {
		var (
			id, projectID        uuid.UUID
			status               int
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &projectID, &status, &createdAt, &updatedAt); err != nil {
			return nil, storeerr.Classify(operation, err)
		}

		view := QuotationSummaryView{Status: quotation.Status(status), CreatedAt: createdAt.UTC(), UpdatedAt: updatedAt.UTC()}
		var err error
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.ProjectID, err = kernel.UUIDFromBytes(projectID[:]); err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, storeerr.Classify(operation, err)
	}
	return views, nil
}
