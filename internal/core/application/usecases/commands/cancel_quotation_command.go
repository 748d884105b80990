package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrCancelQuotationCommandIsNotConstructed = errors.New(
	"CancelQuotationCommand must be created via NewCancelQuotationCommand constructor",
)

// CancelQuotationCommand cancels a Draft or Quoted quotation.
type CancelQuotationCommand struct {
	quotationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelQuotationCommand(quotationID kernel.UUID) (CancelQuotationCommand, error) {
	if err := quotationID.Validate(); err != nil {
		return CancelQuotationCommand{}, err
	}

	return CancelQuotationCommand{
		quotationID: quotationID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CancelQuotationCommand) Validate() error {
	return c.guard.Validate(ErrCancelQuotationCommandIsNotConstructed)
}

func (c CancelQuotationCommand) QuotationID() kernel.UUID {
	return c.quotationID
}
