package commands

import (
	"errors"

	"marketplace/internal/pkg/guard"
)

var ErrExpireQuotationsCommandIsNotConstructed = errors.New(
	"ExpireQuotationsCommand must be created via NewExpireQuotationsCommand constructor",
)

// ExpireQuotationsCommand cancels Quoted quotations none of whose quotes can
// still be accepted. It is issued by the scheduler.
type ExpireQuotationsCommand struct {
	guard guard.ConstructorGuard
}

func NewExpireQuotationsCommand() ExpireQuotationsCommand {
	return ExpireQuotationsCommand{guard: guard.NewConstructorGuard()}
}

func (c ExpireQuotationsCommand) Validate() error {
	return c.guard.Validate(ErrExpireQuotationsCommandIsNotConstructed)
}
