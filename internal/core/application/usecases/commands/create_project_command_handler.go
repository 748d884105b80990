package commands

import (
	"context"

	"marketplace/internal/core/domain/model/project"
	"marketplace/internal/core/ports"
)

// CreateProjectCommandHandler persists a new unlocked project.
type CreateProjectCommandHandler struct {
	txFactory TransactionFactory
	clock     Clock
}

// NewCreateProjectCommandHandler creates a handler for project registration.
func NewCreateProjectCommandHandler(txFactory TransactionFactory, clock Clock) CreateProjectCommandHandler {
	return CreateProjectCommandHandler{
		txFactory: txFactory,
		clock:     clock,
	}
}

// Handle creates the project and returns it.
//
// Example:
//
//	handler := NewCreateProjectCommandHandler(txFactory, clock)
//	cmd, err := NewCreateProjectCommand(customerID, "Gearbox housing")
//	if err != nil {
//	    return fmt.Errorf("invalid command: %w", err)
//	}
//
//	p, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("project creation failed: %w", err)
//	}
func (h *CreateProjectCommandHandler) Handle(ctx context.Context, cmd CreateProjectCommand) (*project.Project, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := project.NewProject(cmd.CustomerID(), cmd.Name(), utcNow(h.clock))
	if err != nil {
		return nil, err
	}

	tx := h.txFactory.Create()
	tx.AddItem(ports.CreateProject{Project: p})
	if err = tx.Execute(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
