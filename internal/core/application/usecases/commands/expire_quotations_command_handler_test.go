package commands_test

import (
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/core/domain/model/quotation"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpireQuotationsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	expired := restoreQuotation(t, kernel.NewUUID(), quotation.Quoted)
	fresh := restoreQuotation(t, kernel.NewUUID(), quotation.Quoted)
	paidMeanwhile := restoreQuotation(t, kernel.NewUUID(), quotation.Quoted)

	quotations := new(MockQuotationRepository)
	quotations.On("ListByStatus", ctx, quotation.Quoted).
		Return([]*quotation.Quotation{expired, fresh, paidMeanwhile}, nil).Once()
	quotations.On("Get", ctx, expired.ID()).Return(expired, nil).Once()
	quotations.On("Get", ctx, paidMeanwhile.ID()).Return(paidMeanwhile, nil).Once()

	// Quotes were issued an hour before friday; fresh ones are re-issued a day later.
	parts := new(MockPartRepository)
	parts.On("ListByQuotation", ctx, expired.ID()).
		Return([]*part.Part{quotedPart(t, expired, "a.step", []string{"10"}, []int{3}, false)}, nil).Once()
	parts.On("ListByQuotation", ctx, fresh.ID()).
		Return([]*part.Part{freshPart(t, fresh)}, nil).Once()
	parts.On("ListByQuotation", ctx, paidMeanwhile.ID()).
		Return([]*part.Part{quotedPart(t, paidMeanwhile, "c.step", []string{"10"}, []int{3}, true)}, nil).Once()

	ok := new(MockTransaction)
	ok.On("Execute", mock.Anything).Return(nil).Once()
	lost := new(MockTransaction)
	lost.On("Execute", mock.Anything).Return(errs.NewConditionalCheckFailedError("update quotation status")).Once()
	factory := new(MockTransactionFactory)
	factory.On("Create").Return(ok).Once()
	factory.On("Create").Return(lost).Once()

	later := func() time.Time { return friday.Add(part.QuoteValidity) }
	cancel := commands.NewCancelQuotationCommandHandler(factory, quotations, later)
	h := commands.NewExpireQuotationsCommandHandler(quotations, parts, cancel, later)

	cancelled, err := h.Handle(ctx, commands.NewExpireQuotationsCommand())
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.True(t, cancelled[0].IsEqual(expired.ID()))

	require.Len(t, ok.items, 1)
	assert.Equal(t, ports.UpdateQuotationStatus{
		QuotationID: expired.ID(), From: quotation.Quoted, To: quotation.Cancelled, At: later(),
	}, ok.items[0])
	quotations.AssertExpectations(t)
	parts.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestExpireQuotationsCommandHandler_Handle_ListError(t *testing.T) {
	ctx := t.Context()
	quotations := new(MockQuotationRepository)
	quotations.On("ListByStatus", ctx, quotation.Quoted).
		Return(nil, errs.NewStoreUnavailableError("list quotations", errors.New("timeout"))).Once()

	cancel := commands.NewCancelQuotationCommandHandler(new(MockTransactionFactory), quotations, clock)
	h := commands.NewExpireQuotationsCommandHandler(quotations, new(MockPartRepository), cancel, clock)

	_, err := h.Handle(ctx, commands.NewExpireQuotationsCommand())
	require.ErrorIs(t, err, errs.ErrStoreUnavailable)
}

func TestExpireQuotationsCommandHandler_Handle_ValidationError(t *testing.T) {
	cancel := commands.NewCancelQuotationCommandHandler(new(MockTransactionFactory), new(MockQuotationRepository), clock)
	h := commands.NewExpireQuotationsCommandHandler(new(MockQuotationRepository), new(MockPartRepository), cancel, clock)

	_, err := h.Handle(t.Context(), commands.ExpireQuotationsCommand{})
	require.ErrorIs(t, err, commands.ErrExpireQuotationsCommandIsNotConstructed)
}

func freshPart(t *testing.T, q *quotation.Quotation) *part.Part {
	t.Helper()
	file, err := part.NewFile("b.step", "uploads/b.step")
	require.NoError(t, err)
	p, err := part.NewPart(kernel.NewUUID(), q.ProjectID(), q.ID(), file, friday)
	require.NoError(t, err)
	option, err := part.NewPriceOption(usd(t, "20"), 5)
	require.NoError(t, err)
	_, err = p.AttachQuote(option, friday.Add(24*time.Hour))
	require.NoError(t, err)
	return p
}
