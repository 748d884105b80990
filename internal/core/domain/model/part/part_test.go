package part_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func option(t *testing.T, amount string, leadTime int) part.PriceOption {
	t.Helper()
	price, err := kernel.ParseMoney(amount, "USD")
	require.NoError(t, err)
	o, err := part.NewPriceOption(price, leadTime)
	require.NoError(t, err)
	return o
}

func newPart(t *testing.T) *part.Part {
	t.Helper()
	file, err := part.NewFile("bracket.step", "models/bracket.step")
	require.NoError(t, err)
	p, err := part.NewPart(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), file, now)
	require.NoError(t, err)
	return p
}

func TestNewFile(t *testing.T) {
	f, err := part.NewFile(" a.step ", "k/a.step")
	require.NoError(t, err)
	assert.Equal(t, "a.step", f.Name())
	assert.Equal(t, "k/a.step", f.Key())

	_, err = part.NewFile("", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewPriceOption(t *testing.T) {
	t.Run("valid option", func(t *testing.T) {
		o := option(t, "10.00", 3)

		require.NoError(t, o.Validate())
		assert.Equal(t, 3, o.LeadTimeDays())
	})

	t.Run("rejects zero price", func(t *testing.T) {
		zero, err := kernel.ZeroMoney("USD")
		require.NoError(t, err)

		_, err = part.NewPriceOption(zero, 3)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects out of range lead time", func(t *testing.T) {
		price, err := kernel.ParseMoney("1", "USD")
		require.NoError(t, err)

		_, err = part.NewPriceOption(price, -1)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		_, err = part.NewPriceOption(price, 366)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects unconstructed money", func(t *testing.T) {
		_, err := part.NewPriceOption(kernel.Money{}, 1)
		require.ErrorIs(t, err, kernel.ErrMoneyIsNotConstructed)
	})
}

func TestNewPart(t *testing.T) {
	p := newPart(t)

	require.NoError(t, p.Validate())
	assert.False(t, p.HasQuotes())
	assert.Nil(t, p.SelectedQuoteID())

	_, err := part.NewPart(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), part.File{}, now)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestPart_AttachQuote(t *testing.T) {
	p := newPart(t)

	q, err := p.AttachQuote(option(t, "10.00", 3), now)

	require.NoError(t, err)
	assert.True(t, p.HasQuotes())
	assert.Equal(t, p.ID(), q.PartID())
	assert.Equal(t, p.QuotationID(), q.QuotationID())
	assert.Equal(t, now.Add(part.QuoteValidity), q.ValidUntil())
	assert.False(t, q.IsExpired(now))
	assert.True(t, q.IsExpired(now.Add(part.QuoteValidity+time.Second)))

	_, err = p.AttachQuote(part.PriceOption{}, now)
	require.ErrorIs(t, err, part.ErrPriceOptionIsNotConstructed)
}

func TestPart_SelectQuote(t *testing.T) {
	t.Run("reselection replaces the previous choice", func(t *testing.T) {
		p := newPart(t)
		first, err := p.AttachQuote(option(t, "10.00", 3), now)
		require.NoError(t, err)
		second, err := p.AttachQuote(option(t, "8.00", 7), now)
		require.NoError(t, err)

		_, err = p.SelectQuote(first.ID(), now)
		require.NoError(t, err)
		patch, err := p.SelectQuote(second.ID(), now.Add(time.Minute))
		require.NoError(t, err)

		selected, ok := p.SelectedQuote()
		require.True(t, ok)
		assert.Equal(t, second.ID(), selected.ID())
		assert.Equal(t, second.ID(), *patch.SelectedPartQuoteID)
		assert.Nil(t, patch.File)
		assert.Equal(t, p.ID(), patch.PartID)
	})

	t.Run("expired quote is rejected", func(t *testing.T) {
		p := newPart(t)
		q, err := p.AttachQuote(option(t, "10.00", 3), now)
		require.NoError(t, err)

		_, err = p.SelectQuote(q.ID(), now.Add(part.QuoteValidity+time.Hour))

		require.ErrorIs(t, err, part.ErrPartQuoteExpired)
		assert.Nil(t, p.SelectedQuoteID())
	})

	t.Run("unknown quote is rejected", func(t *testing.T) {
		p := newPart(t)
		_, err := p.AttachQuote(option(t, "10.00", 3), now)
		require.NoError(t, err)

		_, err = p.SelectQuote(kernel.NewUUID(), now)

		var unknown *part.UnknownPriceOptionError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, p.ID(), unknown.PartID)
		assert.Nil(t, p.SelectedQuoteID())
	})
}

func TestPart_ReplaceFile(t *testing.T) {
	p := newPart(t)
	file, err := part.NewFile("bracket-v2.step", "models/bracket-v2.step")
	require.NoError(t, err)

	patch, err := p.ReplaceFile(file, now)

	require.NoError(t, err)
	assert.Equal(t, file, p.File())
	assert.Equal(t, file, *patch.File)
	assert.Nil(t, patch.SelectedPartQuoteID)
	assert.False(t, patch.IsEmpty())

	_, err = p.ReplaceFile(part.File{}, now)
	require.Error(t, err)
}

func TestRestorePart(t *testing.T) {
	partID := kernel.NewUUID()
	quotationID := kernel.NewUUID()
	price, err := kernel.ParseMoney("5", "USD")
	require.NoError(t, err)
	quote, err := part.RestorePartQuote(kernel.NewUUID(), partID, quotationID, price, 2, now.Add(time.Hour), now)
	require.NoError(t, err)
	file, err := part.NewFile("a.step", "k")
	require.NoError(t, err)
	selected := quote.ID()

	t.Run("restores selection", func(t *testing.T) {
		p, err := part.RestorePart(partID, kernel.NewUUID(), kernel.NewUUID(), quotationID, file,
			&selected, []*part.PartQuote{quote}, now, now)

		require.NoError(t, err)
		got, ok := p.SelectedQuote()
		require.True(t, ok)
		assert.Equal(t, quote.ID(), got.ID())
	})

	t.Run("rejects selection outside quote set", func(t *testing.T) {
		unknown := kernel.NewUUID()
		_, err := part.RestorePart(partID, kernel.NewUUID(), kernel.NewUUID(), quotationID, file,
			&unknown, []*part.PartQuote{quote}, now, now)

		require.ErrorIs(t, err, part.ErrUnknownPriceOption)
	})

	t.Run("rejects quote of another part", func(t *testing.T) {
		_, err := part.RestorePart(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), quotationID, file,
			nil, []*part.PartQuote{quote}, now, now)

		require.ErrorIs(t, err, part.ErrUnknownPriceOption)
	})
}
