package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdatePartCommandIsNotConstructed = errors.New(
	"UpdatePartCommand must be created via NewUpdatePartCommand constructor",
)

// UpdatePartCommand replaces the model file of a part.
type UpdatePartCommand struct {
	quotationID kernel.UUID
	partID      kernel.UUID
	file        part.File

	guard guard.ConstructorGuard
}

func NewUpdatePartCommand(quotationID, partID kernel.UUID, file part.File) (UpdatePartCommand, error) {
	var fileErr error
	if file.IsZero() {
		fileErr = errs.NewValueIsRequiredError("file")
	}
	if err := errors.Join(quotationID.Validate(), partID.Validate(), fileErr); err != nil {
		return UpdatePartCommand{}, err
	}

	return UpdatePartCommand{
		quotationID: quotationID,
		partID:      partID,
		file:        file,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdatePartCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePartCommandIsNotConstructed)
}

func (c UpdatePartCommand) QuotationID() kernel.UUID { return c.quotationID }
func (c UpdatePartCommand) PartID() kernel.UUID      { return c.partID }
func (c UpdatePartCommand) File() part.File          { return c.file }
