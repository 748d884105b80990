// Package project provides the Project aggregate: a customer's container for
// quotations. A project becomes locked once one of its quotations is paid,
// after which no new quotations may be opened for it.
package project

import (
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrProjectIsNotConstructed = errors.New("Project must be created via NewProject or RestoreProject")
	ErrProjectIsLocked         = errors.New("project is locked")
)

const maxNameLength = 255

// Project groups the quotations of one customer.
type Project struct {
	id         kernel.UUID
	customerID kernel.UUID
	name       string
	isLocked   bool
	createdAt  time.Time
	updatedAt  time.Time

	guard guard.ConstructorGuard
}

// NewProject creates an unlocked project owned by customerID.
func NewProject(customerID kernel.UUID, name string, now time.Time) (*Project, error) {
	p := &Project{
		id:        kernel.NewUUID(),
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setCustomerID(customerID), p.setName(name)); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProject rebuilds a project from persisted state.
func RestoreProject(
	id, customerID kernel.UUID,
	name string,
	isLocked bool,
	createdAt, updatedAt time.Time,
) (*Project, error) {
	p := &Project{
		isLocked:  isLocked,
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(id.Validate(), p.setCustomerID(customerID), p.setName(name)); err != nil {
		return nil, err
	}
	p.id = id

	return p, nil
}

func (p *Project) Validate() error {
	if p == nil {
		return ErrProjectIsNotConstructed
	}
	return p.guard.Validate(ErrProjectIsNotConstructed)
}

func (p *Project) ID() kernel.UUID         { return p.id }
func (p *Project) CustomerID() kernel.UUID { return p.customerID }
func (p *Project) Name() string            { return p.name }
func (p *Project) IsLocked() bool          { return p.isLocked }
func (p *Project) CreatedAt() time.Time    { return p.createdAt }
func (p *Project) UpdatedAt() time.Time    { return p.updatedAt }

// EnsureAcceptsQuotations returns ErrProjectIsLocked for a locked project.
func (p *Project) EnsureAcceptsQuotations() error {
	if p.isLocked {
		return ErrProjectIsLocked
	}
	return nil
}

// Lock marks the project as locked. Locking is permanent and idempotent.
func (p *Project) Lock(now time.Time) {
	if p.isLocked {
		return
	}
	p.isLocked = true
	p.updatedAt = now
}

func (p *Project) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	p.customerID = customerID
	return nil
}

func (p *Project) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if len(name) > maxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", len(name), 1, maxNameLength)
	}
	p.name = name
	return nil
}
