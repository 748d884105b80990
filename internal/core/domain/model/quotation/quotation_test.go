package quotation_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/quotation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func usd(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.ParseMoney(amount, "USD")
	require.NoError(t, err)
	return m
}

func newQuotation(t *testing.T, status quotation.Status) *quotation.Quotation {
	t.Helper()
	q, err := quotation.RestoreQuotation(kernel.NewUUID(), kernel.NewUUID(), status, now, now)
	require.NoError(t, err)
	return q
}

func TestNewQuotation(t *testing.T) {
	projectID := kernel.NewUUID()

	q, err := quotation.NewQuotation(projectID, now)

	require.NoError(t, err)
	require.NoError(t, q.Validate())
	assert.Equal(t, quotation.Draft, q.Status())
	assert.Equal(t, projectID, q.ProjectID())

	_, err = quotation.NewQuotation(kernel.UUID{}, now)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestRestoreQuotation_RejectsInvalidStatus(t *testing.T) {
	_, err := quotation.RestoreQuotation(kernel.NewUUID(), kernel.NewUUID(), quotation.Unknown, now, now)

	require.Error(t, err)
}

func TestQuotation_MarkQuoted(t *testing.T) {
	later := now.Add(time.Minute)

	t.Run("draft with every part quoted becomes quoted", func(t *testing.T) {
		q := newQuotation(t, quotation.Draft)

		require.NoError(t, q.MarkQuoted(2, 2, later))
		assert.Equal(t, quotation.Quoted, q.Status())
		assert.Equal(t, later, q.UpdatedAt())
	})

	t.Run("unquoted parts block the transition", func(t *testing.T) {
		q := newQuotation(t, quotation.Draft)

		require.ErrorIs(t, q.MarkQuoted(2, 1, later), quotation.ErrPartsNotQuoted)
		require.ErrorIs(t, q.MarkQuoted(0, 0, later), quotation.ErrPartsNotQuoted)
		assert.Equal(t, quotation.Draft, q.Status())
	})

	t.Run("non draft quotation is rejected", func(t *testing.T) {
		q := newQuotation(t, quotation.Quoted)

		require.ErrorIs(t, q.MarkQuoted(1, 1, later), quotation.ErrInvalidTransition)
	})
}

func TestQuotation_RecordSelections(t *testing.T) {
	q := newQuotation(t, quotation.Quoted)

	complete, err := q.RecordSelections(1, 2)
	require.NoError(t, err)
	assert.False(t, complete)

	complete, err = q.RecordSelections(2, 2)
	require.NoError(t, err)
	assert.True(t, complete)
	assert.Equal(t, quotation.Quoted, q.Status())

	for _, status := range []quotation.Status{quotation.Draft, quotation.Paid, quotation.Cancelled} {
		_, err = newQuotation(t, status).RecordSelections(1, 1)
		require.ErrorIs(t, err, quotation.ErrInvalidTransition, status.String())
	}
}

func TestQuotation_MarkPaid(t *testing.T) {
	t.Run("exact amount pays the quotation", func(t *testing.T) {
		q := newQuotation(t, quotation.Quoted)

		require.NoError(t, q.MarkPaid(usd(t, "30.00"), usd(t, "30"), now))
		assert.Equal(t, quotation.Paid, q.Status())
	})

	t.Run("one minor unit off is rejected", func(t *testing.T) {
		for _, amount := range []string{"29.99", "30.01"} {
			q := newQuotation(t, quotation.Quoted)

			err := q.MarkPaid(usd(t, amount), usd(t, "30.00"), now)

			var mismatch *quotation.PaymentAmountMismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.True(t, mismatch.Expected.Equal(usd(t, "30.00")))
			assert.Equal(t, quotation.Quoted, q.Status())
		}
	})

	t.Run("currency must match", func(t *testing.T) {
		q := newQuotation(t, quotation.Quoted)
		eur, err := kernel.ParseMoney("30.00", "EUR")
		require.NoError(t, err)

		require.ErrorIs(t, q.MarkPaid(eur, usd(t, "30.00"), now), quotation.ErrPaymentAmountMismatch)
	})

	t.Run("draft cannot be paid", func(t *testing.T) {
		q := newQuotation(t, quotation.Draft)

		require.ErrorIs(t, q.MarkPaid(usd(t, "1"), usd(t, "1"), now), quotation.ErrInvalidTransition)
	})
}

func TestQuotation_Cancel(t *testing.T) {
	for _, status := range []quotation.Status{quotation.Draft, quotation.Quoted} {
		q := newQuotation(t, status)
		require.NoError(t, q.Cancel(now))
		assert.Equal(t, quotation.Cancelled, q.Status())
	}

	for _, status := range []quotation.Status{quotation.Paid, quotation.Cancelled} {
		q := newQuotation(t, status)
		require.ErrorIs(t, q.Cancel(now), quotation.ErrInvalidTransition)
		assert.Equal(t, status, q.Status())
	}
}
