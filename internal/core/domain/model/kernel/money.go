package kernel

import (
	"errors"
	"fmt"
	"regexp"

	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrMoneyIsNotConstructed is returned by Validate on a zero-value Money.
	ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney or ParseMoney")

	// ErrCurrencyMismatch is returned when combining amounts of different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Money is an exact, non-negative decimal amount in an ISO 4217 currency.
// It is immutable: arithmetic returns new values. Two Money values are equal
// only when currencies match and amounts are numerically identical, so 30.00
// and 30 USD are equal while 29.99 and 30.00 USD are not.
type Money struct {
	amount   decimal.Decimal
	currency string

	isConstructed bool
}

// NewMoney creates a Money from a decimal amount and a three letter uppercase currency code.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if !currencyCodePattern.MatchString(currency) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"currency",
			fmt.Errorf("%q is not an ISO 4217 code", currency),
		)
	}
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}

	return Money{amount: amount, currency: currency, isConstructed: true}, nil
}

// ParseMoney creates a Money from a decimal string such as "19.99".
func ParseMoney(amount, currency string) (Money, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(value, currency)
}

// ZeroMoney returns zero in the given currency.
func ZeroMoney(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the ISO 4217 code.
func (m Money) Currency() string {
	return m.currency
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Add returns m + other. Both values must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return Money{}, err
	}
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}

	return Money{amount: m.amount.Add(other.amount), currency: m.currency, isConstructed: true}, nil
}

// Equal reports whether both values have the same currency and numerically equal amounts.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// Validate ensures the value was created through a constructor.
func (m Money) Validate() error {
	if !m.isConstructed {
		return ErrMoneyIsNotConstructed
	}
	return nil
}

// String formats the value with two decimals, e.g. "30.00 USD".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}
