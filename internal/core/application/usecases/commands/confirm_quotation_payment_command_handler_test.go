package commands_test

import (
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/core/domain/model/quotation"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	quotation *quotation.Quotation
	parts     []*part.Part

	quotations *MockQuotationRepository
	partRepo   *MockPartRepository
	orders     *MockOrderRepository
}

// newPaymentFixture builds a Quoted quotation with part A at $10 in 3 days
// and part B at $20 in 5 days, both selected.
func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	q := restoreQuotation(t, kernel.NewUUID(), quotation.Quoted)
	parts := []*part.Part{
		quotedPart(t, q, "a.step", []string{"10.00"}, []int{3}, true),
		quotedPart(t, q, "b.step", []string{"20.00"}, []int{5}, true),
	}

	quotations := new(MockQuotationRepository)
	quotations.On("Get", mock.Anything, q.ID()).Return(q, nil).Once()
	partRepo := new(MockPartRepository)
	partRepo.On("ListByQuotation", mock.Anything, q.ID()).Return(parts, nil).Once()

	return &paymentFixture{
		quotation:  q,
		parts:      parts,
		quotations: quotations,
		partRepo:   partRepo,
		orders:     new(MockOrderRepository),
	}
}

func (f *paymentFixture) handler(factory commands.TransactionFactory) commands.ConfirmQuotationPaymentCommandHandler {
	return commands.NewConfirmQuotationPaymentCommandHandler(
		factory, f.quotations, f.partRepo, f.orders, services.NewOrderPlanner(), clock,
	)
}

func TestConfirmQuotationPaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newPaymentFixture(t)
	factory, tx := newTx(nil)
	h := f.handler(factory)

	cmd, err := commands.NewConfirmQuotationPaymentCommand(f.quotation.ID(), usd(t, "30.00"))
	require.NoError(t, err)

	orders, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC), orders[0].Deadline())
	assert.Equal(t, time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC), orders[1].Deadline())
	for i, o := range orders {
		assert.Equal(t, order.Created, o.Status())
		assert.True(t, o.ID().IsEqual(kernel.DeriveUUID(f.quotation.ID(), f.parts[i].ID())))
		assert.True(t, o.PartQuoteID().IsEqual(*f.parts[i].SelectedQuoteID()))
	}
	assert.Equal(t, quotation.Paid, f.quotation.Status())

	require.Len(t, tx.items, 6)
	assert.Len(t, itemsOf[ports.CreateOrder](tx.items), 2)
	checks := itemsOf[ports.CheckPartSelection](tx.items)
	require.Len(t, checks, 2)
	for i, check := range checks {
		assert.True(t, check.PartID.IsEqual(f.parts[i].ID()))
		assert.True(t, check.SelectedPartQuoteID.IsEqual(*f.parts[i].SelectedQuoteID()))
	}
	_, last := tx.items[len(tx.items)-1].(ports.CheckPartSelection)
	assert.True(t, last, "selection guards run after the quotation update")
	statusItems := itemsOf[ports.UpdateQuotationStatus](tx.items)
	require.Len(t, statusItems, 1)
	assert.Equal(t, quotation.Quoted, statusItems[0].From)
	assert.Equal(t, quotation.Paid, statusItems[0].To)
	locks := itemsOf[ports.LockProject](tx.items)
	require.Len(t, locks, 1)
	assert.True(t, locks[0].ProjectID.IsEqual(f.quotation.ProjectID()))

	tx.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestConfirmQuotationPaymentCommandHandler_Handle_AmountOffByOneCent(t *testing.T) {
	ctx := t.Context()
	f := newPaymentFixture(t)
	factory := new(MockTransactionFactory)
	h := f.handler(factory)

	cmd, err := commands.NewConfirmQuotationPaymentCommand(f.quotation.ID(), usd(t, "29.99"))
	require.NoError(t, err)

	orders, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Nil(t, orders)
	assert.ErrorIs(t, err, quotation.ErrPaymentAmountMismatch)
	assert.Equal(t, quotation.Quoted, f.quotation.Status())
	factory.AssertNotCalled(t, "Create")
}

func TestConfirmQuotationPaymentCommandHandler_Handle_MissingSelection(t *testing.T) {
	ctx := t.Context()
	q := restoreQuotation(t, kernel.NewUUID(), quotation.Quoted)
	parts := []*part.Part{
		quotedPart(t, q, "a.step", []string{"10.00"}, []int{3}, true),
		quotedPart(t, q, "b.step", []string{"20.00"}, []int{5}, false),
	}
	quotations := new(MockQuotationRepository)
	quotations.On("Get", mock.Anything, q.ID()).Return(q, nil).Once()
	partRepo := new(MockPartRepository)
	partRepo.On("ListByQuotation", mock.Anything, q.ID()).Return(parts, nil).Once()

	h := commands.NewConfirmQuotationPaymentCommandHandler(
		new(MockTransactionFactory), quotations, partRepo, new(MockOrderRepository), services.NewOrderPlanner(), clock,
	)
	cmd, err := commands.NewConfirmQuotationPaymentCommand(q.ID(), usd(t, "10.00"))
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, services.ErrNoSelection)

	var noSelection *services.NoSelectionError
	require.ErrorAs(t, err, &noSelection)
	assert.Len(t, noSelection.PartIDs, 1)
}

func TestConfirmQuotationPaymentCommandHandler_Handle_AlreadyPaid(t *testing.T) {
	ctx := t.Context()
	f := newPaymentFixture(t)

	// The first delivery.
	factory, _ := newTx(nil)
	cmd, err := commands.NewConfirmQuotationPaymentCommand(f.quotation.ID(), usd(t, "30.00"))
	require.NoError(t, err)
	h := f.handler(factory)
	first, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	// The redelivery reads a Paid quotation and must not write.
	f.quotations.On("Get", mock.Anything, f.quotation.ID()).Return(f.quotation, nil).Once()
	f.partRepo.On("ListByQuotation", mock.Anything, f.quotation.ID()).Return(f.parts, nil).Once()
	f.orders.On("ListByQuotation", mock.Anything, f.quotation.ID()).Return(first, nil).Once()
	idle := new(MockTransactionFactory)
	h = f.handler(idle)

	second, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].IsEqual(second[i]))
	}
	idle.AssertNotCalled(t, "Create")
	f.orders.AssertExpectations(t)
}

func TestConfirmQuotationPaymentCommandHandler_Handle_AlreadyPaidWithDifferentAmount(t *testing.T) {
	ctx := t.Context()
	q := restoreQuotation(t, kernel.NewUUID(), quotation.Paid)
	parts := []*part.Part{quotedPart(t, q, "a.step", []string{"10.00"}, []int{3}, true)}
	quotations := new(MockQuotationRepository)
	quotations.On("Get", mock.Anything, q.ID()).Return(q, nil).Once()
	partRepo := new(MockPartRepository)
	partRepo.On("ListByQuotation", mock.Anything, q.ID()).Return(parts, nil).Once()
	orders := new(MockOrderRepository)

	h := commands.NewConfirmQuotationPaymentCommandHandler(
		new(MockTransactionFactory), quotations, partRepo, orders, services.NewOrderPlanner(), clock,
	)
	cmd, err := commands.NewConfirmQuotationPaymentCommand(q.ID(), usd(t, "11.00"))
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, quotation.ErrPaymentAmountMismatch)
	orders.AssertNotCalled(t, "ListByQuotation", mock.Anything, mock.Anything)
}

func TestConfirmQuotationPaymentCommandHandler_Handle_LostRaceToSamePayment(t *testing.T) {
	ctx := t.Context()
	f := newPaymentFixture(t)
	factory, _ := newTx(errs.NewConditionalCheckFailedError("update quotation status"))

	paid := restoreQuotationWithID(t, f.quotation, quotation.Paid)
	f.quotations.On("Get", mock.Anything, f.quotation.ID()).Return(paid, nil).Once()

	stored := []*order.Order{}
	f.orders.On("ListByQuotation", mock.Anything, f.quotation.ID()).Return(stored, nil).Once()

	cmd, err := commands.NewConfirmQuotationPaymentCommand(f.quotation.ID(), usd(t, "30.00"))
	require.NoError(t, err)
	h := f.handler(factory)

	orders, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, stored, orders)
	f.orders.AssertExpectations(t)
}

func TestConfirmQuotationPaymentCommandHandler_Handle_LostRaceToCancellation(t *testing.T) {
	ctx := t.Context()
	f := newPaymentFixture(t)
	factory, _ := newTx(errs.NewConditionalCheckFailedError("update quotation status"))

	cancelled := restoreQuotationWithID(t, f.quotation, quotation.Cancelled)
	f.quotations.On("Get", mock.Anything, f.quotation.ID()).Return(cancelled, nil).Once()

	cmd, err := commands.NewConfirmQuotationPaymentCommand(f.quotation.ID(), usd(t, "30.00"))
	require.NoError(t, err)
	h := f.handler(factory)

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrConflict)
	require.ErrorIs(t, err, errs.ErrConditionalCheckFailed)
}

func TestConfirmQuotationPaymentCommandHandler_Handle_StoreUnavailable(t *testing.T) {
	ctx := t.Context()
	f := newPaymentFixture(t)
	factory, _ := newTx(errs.NewStoreUnavailableError("commit", errors.New("connection reset")))

	cmd, err := commands.NewConfirmQuotationPaymentCommand(f.quotation.ID(), usd(t, "30.00"))
	require.NoError(t, err)
	h := f.handler(factory)

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrStoreUnavailable)
	f.orders.AssertNotCalled(t, "ListByQuotation", mock.Anything, mock.Anything)
}

func TestConfirmQuotationPaymentCommandHandler_Handle_UnpayableQuotation(t *testing.T) {
	tests := []struct {
		status quotation.Status
		parts  func(t *testing.T, q *quotation.Quotation) []*part.Part
	}{
		{quotation.Draft, func(*testing.T, *quotation.Quotation) []*part.Part { return []*part.Part{} }},
		{quotation.Cancelled, func(t *testing.T, q *quotation.Quotation) []*part.Part {
			return []*part.Part{quotedPart(t, q, "a.step", []string{"10.00"}, []int{3}, false)}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			ctx := t.Context()
			q := restoreQuotation(t, kernel.NewUUID(), tt.status)
			quotations := new(MockQuotationRepository)
			quotations.On("Get", mock.Anything, q.ID()).Return(q, nil).Once()
			partRepo := new(MockPartRepository)
			partRepo.On("ListByQuotation", mock.Anything, q.ID()).Return(tt.parts(t, q), nil).Once()
			factory := new(MockTransactionFactory)

			h := commands.NewConfirmQuotationPaymentCommandHandler(
				factory, quotations, partRepo, new(MockOrderRepository), services.NewOrderPlanner(), clock,
			)
			cmd, err := commands.NewConfirmQuotationPaymentCommand(q.ID(), usd(t, "10.00"))
			require.NoError(t, err)

			_, err = h.Handle(ctx, cmd)
			require.ErrorIs(t, err, quotation.ErrInvalidTransition)
			assert.NotErrorIs(t, err, services.ErrNoSelection)
			factory.AssertNotCalled(t, "Create")
		})
	}
}

func TestConfirmQuotationPaymentCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	quotations := new(MockQuotationRepository)
	quotations.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("quotation", id)).Once()
	partRepo := new(MockPartRepository)
	partRepo.On("ListByQuotation", mock.Anything, id).Return([]*part.Part{}, nil).Maybe()

	h := commands.NewConfirmQuotationPaymentCommandHandler(
		new(MockTransactionFactory), quotations, partRepo, new(MockOrderRepository), services.NewOrderPlanner(), clock,
	)
	cmd, err := commands.NewConfirmQuotationPaymentCommand(id, usd(t, "10.00"))
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestConfirmQuotationPaymentCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewConfirmQuotationPaymentCommandHandler(
		new(MockTransactionFactory), new(MockQuotationRepository), new(MockPartRepository),
		new(MockOrderRepository), services.NewOrderPlanner(), clock,
	)
	_, err := h.Handle(t.Context(), commands.ConfirmQuotationPaymentCommand{})
	require.ErrorIs(t, err, commands.ErrConfirmQuotationPaymentCommandIsNotConstructed)
}

func restoreQuotationWithID(t *testing.T, q *quotation.Quotation, status quotation.Status) *quotation.Quotation {
	t.Helper()
	restored, err := quotation.RestoreQuotation(q.ID(), q.ProjectID(), status, q.CreatedAt(), friday)
	require.NoError(t, err)
	return restored
}
