package queries

import (
	"context"

	"marketplace/internal/adapters/out/postgres/storeerr"

	"gorm.io/gorm"
)

// GetProjectsForClientQueryHandler pages through the projects table. Project
// ids are time ordered, so the last id of a page is the cursor of the next.
type GetProjectsForClientQueryHandler struct {
	db *gorm.DB
}

func NewGetProjectsForClientQueryHandler(db *gorm.DB) GetProjectsForClientQueryHandler {
	return GetProjectsForClientQueryHandler{db: db}
}

// Handle returns one page. An unknown customer has an empty first page.
func (h GetProjectsForClientQueryHandler) Handle(ctx context.Context, query GetProjectsForClientQuery) (ProjectPage, error) {
	if err := query.Validate(); err != nil {
		return ProjectPage{}, err
	}

	stmt := `
		SELECT id, customer_id, name, is_locked, created_at, updated_at
		FROM projects
		WHERE customer_id = ?`
	args := []any{query.CustomerID().Bytes()}
	if after := query.After(); after != nil {
		stmt += ` AND id > ?`
		args = append(args, after.Bytes())
	}
	stmt += `
		ORDER BY id
		LIMIT ?`
	// One extra row tells whether another page follows.
	args = append(args, query.Limit()+1)

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return ProjectPage{}, storeerr.Classify("list projects for client", err)
	}
	views, err := scanProjectViews("list projects for client", rows)
	if err != nil {
		return ProjectPage{}, err
	}

	page := ProjectPage{Projects: views}
	if len(views) > query.Limit() {
		page.Projects = views[:query.Limit()]
		next := page.Projects[query.Limit()-1].ID
		page.Next = &next
	}
	return page, nil
}
