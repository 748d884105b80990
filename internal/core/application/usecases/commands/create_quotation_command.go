package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrCreateQuotationCommandIsNotConstructed = errors.New(
	"CreateQuotationCommand must be created via NewCreateQuotationCommand constructor",
)

// CreateQuotationCommand opens a Draft quotation in a project.
type CreateQuotationCommand struct {
	projectID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateQuotationCommand(projectID kernel.UUID) (CreateQuotationCommand, error) {
	if err := projectID.Validate(); err != nil {
		return CreateQuotationCommand{}, err
	}

	return CreateQuotationCommand{
		projectID: projectID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateQuotationCommand) Validate() error {
	return c.guard.Validate(ErrCreateQuotationCommandIsNotConstructed)
}

func (c CreateQuotationCommand) ProjectID() kernel.UUID {
	return c.projectID
}
