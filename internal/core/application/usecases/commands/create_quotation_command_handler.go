package commands

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/project"
	"marketplace/internal/core/domain/model/quotation"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreateQuotationCommandHandler opens a quotation unless the project is locked.
// The lock is re-checked inside the commit, so a payment that locks the
// project concurrently makes the creation fail instead of slipping through.
type CreateQuotationCommandHandler struct {
	txFactory TransactionFactory
	projects  ports.ProjectRepository
	clock     Clock
}

// NewCreateQuotationCommandHandler creates a handler for opening quotations.
// Requires the project repository to check the lock before committing.
func NewCreateQuotationCommandHandler(
	txFactory TransactionFactory,
	projects ports.ProjectRepository,
	clock Clock,
) CreateQuotationCommandHandler {
	return CreateQuotationCommandHandler{
		txFactory: txFactory,
		projects:  projects,
		clock:     clock,
	}
}

// Handle opens a Draft quotation on the project. A locked project yields
// project.ErrProjectIsLocked.
func (h *CreateQuotationCommandHandler) Handle(
	ctx context.Context,
	cmd CreateQuotationCommand,
) (*quotation.Quotation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := h.projects.Get(ctx, cmd.ProjectID())
	if err != nil {
		return nil, err
	}
	if err = p.EnsureAcceptsQuotations(); err != nil {
		return nil, fmt.Errorf("project %s: %w", p.ID(), err)
	}

	q, err := quotation.NewQuotation(p.ID(), utcNow(h.clock))
	if err != nil {
		return nil, err
	}

	tx := h.txFactory.Create()
	tx.AddItems(
		ports.CheckProjectUnlocked{ProjectID: p.ID()},
		ports.CreateQuotation{Quotation: q},
	)
	if err = tx.Execute(ctx); err != nil {
		if errors.Is(err, errs.ErrConditionalCheckFailed) {
			return nil, fmt.Errorf("project %s: %w", p.ID(), project.ErrProjectIsLocked)
		}
		return nil, err
	}

	return q, nil
}
