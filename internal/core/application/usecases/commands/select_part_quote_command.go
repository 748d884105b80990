package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrSelectPartQuoteCommandIsNotConstructed = errors.New(
	"SelectPartQuoteCommand must be created via NewSelectPartQuoteCommand constructor",
)

// SelectPartQuoteCommand chooses which quote of a part the customer buys.
type SelectPartQuoteCommand struct {
	quotationID kernel.UUID
	partID      kernel.UUID
	partQuoteID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSelectPartQuoteCommand(quotationID, partID, partQuoteID kernel.UUID) (SelectPartQuoteCommand, error) {
	if err := errors.Join(quotationID.Validate(), partID.Validate(), partQuoteID.Validate()); err != nil {
		return SelectPartQuoteCommand{}, err
	}

	return SelectPartQuoteCommand{
		quotationID: quotationID,
		partID:      partID,
		partQuoteID: partQuoteID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c SelectPartQuoteCommand) Validate() error {
	return c.guard.Validate(ErrSelectPartQuoteCommandIsNotConstructed)
}

func (c SelectPartQuoteCommand) QuotationID() kernel.UUID { return c.quotationID }
func (c SelectPartQuoteCommand) PartID() kernel.UUID      { return c.partID }
func (c SelectPartQuoteCommand) PartQuoteID() kernel.UUID { return c.partQuoteID }
