package commands_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/core/domain/model/project"
	"marketplace/internal/core/domain/model/quotation"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// friday is the command clock used by every test.
var friday = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return friday }

type MockTransaction struct {
	mock.Mock

	items []ports.TransactionItem
}

func (m *MockTransaction) AddItem(item ports.TransactionItem) {
	m.items = append(m.items, item)
}

func (m *MockTransaction) AddItems(items ...ports.TransactionItem) {
	m.items = append(m.items, items...)
}

func (m *MockTransaction) Len() int { return len(m.items) }

func (m *MockTransaction) Execute(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockTransactionFactory struct{ mock.Mock }

func (m *MockTransactionFactory) Create() ports.Transaction {
	args := m.Called()
	return args.Get(0).(ports.Transaction)
}

// newTx returns a factory handing out one transaction whose Execute returns err.
func newTx(err error) (*MockTransactionFactory, *MockTransaction) {
	tx := new(MockTransaction)
	tx.On("Execute", mock.Anything).Return(err).Once()

	factory := new(MockTransactionFactory)
	factory.On("Create").Return(tx).Once()
	return factory, tx
}

type MockProjectRepository struct{ mock.Mock }

func (m *MockProjectRepository) Get(ctx context.Context, id kernel.UUID) (*project.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

type MockQuotationRepository struct{ mock.Mock }

func (m *MockQuotationRepository) Get(ctx context.Context, id kernel.UUID) (*quotation.Quotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quotation.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) ListByStatus(
	ctx context.Context,
	status quotation.Status,
) ([]*quotation.Quotation, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*quotation.Quotation), args.Error(1)
}

type MockPartRepository struct{ mock.Mock }

func (m *MockPartRepository) Get(ctx context.Context, quotationID, partID kernel.UUID) (*part.Part, error) {
	args := m.Called(ctx, quotationID, partID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*part.Part), args.Error(1)
}

func (m *MockPartRepository) ListByQuotation(ctx context.Context, quotationID kernel.UUID) ([]*part.Part, error) {
	args := m.Called(ctx, quotationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*part.Part), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByQuotation(ctx context.Context, quotationID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, quotationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func usd(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.ParseMoney(amount, "USD")
	require.NoError(t, err)
	return m
}

func restoreQuotation(t *testing.T, projectID kernel.UUID, status quotation.Status) *quotation.Quotation {
	t.Helper()
	q, err := quotation.RestoreQuotation(kernel.NewUUID(), projectID, status, friday.Add(-time.Hour), friday.Add(-time.Hour))
	require.NoError(t, err)
	return q
}

// quotedPart builds a part of q with one quote per price, each with the
// matching lead time. The first quote is selected when selectFirst is set.
func quotedPart(
	t *testing.T,
	q *quotation.Quotation,
	name string,
	prices []string,
	leadTimes []int,
	selectFirst bool,
) *part.Part {
	t.Helper()
	file, err := part.NewFile(name, "uploads/"+name)
	require.NoError(t, err)
	p, err := part.NewPart(kernel.NewUUID(), q.ProjectID(), q.ID(), file, friday.Add(-time.Hour))
	require.NoError(t, err)

	for i, price := range prices {
		option, err := part.NewPriceOption(usd(t, price), leadTimes[i])
		require.NoError(t, err)
		_, err = p.AttachQuote(option, friday.Add(-time.Hour))
		require.NoError(t, err)
	}
	if selectFirst {
		_, err = p.SelectQuote(p.Quotes()[0].ID(), friday.Add(-time.Hour))
		require.NoError(t, err)
	}
	return p
}

func itemsOf[T ports.TransactionItem](items []ports.TransactionItem) []T {
	var out []T
	for _, item := range items {
		if typed, ok := item.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}
