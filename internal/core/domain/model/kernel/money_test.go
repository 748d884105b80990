package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.ParseMoney(amount, "USD")
	require.NoError(t, err)
	return m
}

func TestNewMoney(t *testing.T) {
	t.Run("should create money", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("10.50"), "EUR")

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, "EUR", m.Currency())
		assert.True(t, decimal.RequireFromString("10.5").Equal(m.Amount()))
		assert.Equal(t, "10.50 EUR", m.String())
	})

	t.Run("should reject invalid currency codes", func(t *testing.T) {
		for _, code := range []string{"", "usd", "US", "USDT", "U1D"} {
			_, err := kernel.NewMoney(decimal.NewFromInt(1), code)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "code %q", code)
		}
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1), "USD")

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject unparsable amounts", func(t *testing.T) {
		_, err := kernel.ParseMoney("ten", "USD")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var m kernel.Money

		assert.Equal(t, kernel.ErrMoneyIsNotConstructed, m.Validate())
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("should add same currency exactly", func(t *testing.T) {
		sum, err := usd(t, "0.10").Add(usd(t, "0.20"))

		require.NoError(t, err)
		assert.True(t, sum.Equal(usd(t, "0.30")))
	})

	t.Run("should reject different currencies", func(t *testing.T) {
		eur, err := kernel.ParseMoney("1", "EUR")
		require.NoError(t, err)

		_, err = usd(t, "1").Add(eur)

		require.ErrorIs(t, err, kernel.ErrCurrencyMismatch)
	})

	t.Run("should reject zero values", func(t *testing.T) {
		_, err := usd(t, "1").Add(kernel.Money{})

		require.ErrorIs(t, err, kernel.ErrMoneyIsNotConstructed)
	})
}

func TestMoney_Equal(t *testing.T) {
	assert.True(t, usd(t, "30").Equal(usd(t, "30.00")))
	assert.False(t, usd(t, "30.00").Equal(usd(t, "29.99")))
	assert.False(t, usd(t, "30.00").Equal(usd(t, "30.01")))

	eur, err := kernel.ParseMoney("30", "EUR")
	require.NoError(t, err)
	assert.False(t, usd(t, "30").Equal(eur))
}

func TestZeroMoney(t *testing.T) {
	zero, err := kernel.ZeroMoney("USD")

	require.NoError(t, err)
	assert.True(t, zero.IsZero())
}
