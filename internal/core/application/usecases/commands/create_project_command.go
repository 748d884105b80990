package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateProjectCommandIsNotConstructed = errors.New(
	"CreateProjectCommand must be created via NewCreateProjectCommand constructor",
)

// CreateProjectCommand opens a new project for a customer.
type CreateProjectCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	name       string

	guard guard.ConstructorGuard
}

func NewCreateProjectCommand(customerID kernel.UUID, name string) (CreateProjectCommand, error) {
	cmd := CreateProjectCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setName(name),
	); err != nil {
		return CreateProjectCommand{}, err
	}

	return cmd, nil
}

func (c CreateProjectCommand) Validate() error {
	return c.guard.Validate(ErrCreateProjectCommandIsNotConstructed)
}

func (c CreateProjectCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateProjectCommand) Name() string {
	return c.name
}

func (c *CreateProjectCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateProjectCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}
