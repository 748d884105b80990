package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrConfirmQuotationPaymentCommandIsNotConstructed = errors.New(
	"ConfirmQuotationPaymentCommand must be created via NewConfirmQuotationPaymentCommand constructor",
)

// ConfirmQuotationPaymentCommand reports a confirmed payment for a quotation.
// It is safe to deliver more than once.
type ConfirmQuotationPaymentCommand struct {
	quotationID kernel.UUID
	amount      kernel.Money

	guard guard.ConstructorGuard
}

func NewConfirmQuotationPaymentCommand(
	quotationID kernel.UUID,
	amount kernel.Money,
) (ConfirmQuotationPaymentCommand, error) {
	if err := errors.Join(quotationID.Validate(), amount.Validate()); err != nil {
		return ConfirmQuotationPaymentCommand{}, err
	}

	return ConfirmQuotationPaymentCommand{
		quotationID: quotationID,
		amount:      amount,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmQuotationPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmQuotationPaymentCommandIsNotConstructed)
}

func (c ConfirmQuotationPaymentCommand) QuotationID() kernel.UUID { return c.quotationID }
func (c ConfirmQuotationPaymentCommand) Amount() kernel.Money     { return c.amount }
