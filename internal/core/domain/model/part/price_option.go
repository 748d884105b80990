package part

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	maxLeadTimeDays = 365
)

var (
	ErrPriceOptionIsNotConstructed = errors.New("PriceOption must be created via NewPriceOption")

	// ErrEmptyPriceOptions is returned when a file is submitted without any priced option.
	ErrEmptyPriceOptions = errors.New("at least one price option is required per file")
)

// PriceOption is a priced offer (price, lead time in workdays) proposed for a
// part during quoting. It becomes a PartQuote once attached to a part.
type PriceOption struct {
	price        kernel.Money
	leadTimeDays int

	guard guard.ConstructorGuard
}

// NewPriceOption validates a positive price and a lead time between 0 and 365 workdays.
func NewPriceOption(price kernel.Money, leadTimeDays int) (PriceOption, error) {
	if err := price.Validate(); err != nil {
		return PriceOption{}, err
	}
	if price.IsZero() {
		return PriceOption{}, errs.NewValueIsOutOfRangeError("price", price.String(), "greater than 0", "unbounded")
	}
	if leadTimeDays < 0 || leadTimeDays > maxLeadTimeDays {
		return PriceOption{}, errs.NewValueIsOutOfRangeError("lead time days", leadTimeDays, 0, maxLeadTimeDays)
	}

	return PriceOption{price: price, leadTimeDays: leadTimeDays, guard: guard.NewConstructorGuard()}, nil
}

func (o PriceOption) Price() kernel.Money { return o.price }
func (o PriceOption) LeadTimeDays() int   { return o.leadTimeDays }

func (o PriceOption) Validate() error {
	return o.guard.Validate(ErrPriceOptionIsNotConstructed)
}
