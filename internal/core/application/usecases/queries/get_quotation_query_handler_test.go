package queries_test

import (
	"testing"
	"time"

	adapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/partrepo"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/adapters/out/postgres/quotationrepo"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/core/domain/model/quotation"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type quotationFixture struct {
	db      *gorm.DB
	q       *quotation.Quotation
	a, b    *part.Part
	handler queries.GetQuotationQueryHandler
}

func newQuotationFixture(t *testing.T, clock func() time.Time) *quotationFixture {
	t.Helper()
	db := pgtest.NewSQLite(t)
	p := pgtest.NewProject(t)
	q := pgtest.NewQuotation(t, p.ID())
	a := pgtest.NewPart(t, q, pgtest.PriceOption{Amount: "10", LeadTimeDays: 3}, pgtest.PriceOption{Amount: "12", LeadTimeDays: 1})
	b := pgtest.NewPart(t, q, pgtest.PriceOption{Amount: "20", LeadTimeDays: 5})
	require.NoError(t, q.MarkQuoted(2, 2, pgtest.Now))

	tx := adapter.NewGormTransactionFactory(db, 0, nil).Create()
	tx.AddItems(ports.CreateProject{Project: p}, ports.CreateQuotation{Quotation: q})
	for _, pt := range []*part.Part{a, b} {
		tx.AddItem(ports.CreatePart{Part: pt})
		for _, pq := range pt.Quotes() {
			tx.AddItem(ports.CreatePartQuote{Quote: pq})
		}
	}
	require.NoError(t, tx.Execute(t.Context()))

	handler := queries.NewGetQuotationQueryHandler(
		quotationrepo.NewGormQuotationRepository(db, nil),
		partrepo.NewGormPartRepository(db, nil),
		services.NewOrderPlanner(),
		clock,
	)
	return &quotationFixture{db: db, q: q, a: a, b: b, handler: handler}
}

func (f *quotationFixture) selectQuote(t *testing.T, p *part.Part, quoteID kernel.UUID) {
	t.Helper()
	patch, err := p.SelectQuote(quoteID, pgtest.Now)
	require.NoError(t, err)
	tx := adapter.NewGormTransactionFactory(f.db, 0, nil).Create()
	tx.AddItem(ports.UpdatePart{Patch: patch, At: pgtest.Now})
	require.NoError(t, tx.Execute(t.Context()))
}

func TestGetQuotationQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	f := newQuotationFixture(t, func() time.Time { return pgtest.Now })
	query, err := queries.NewGetQuotationQuery(f.q.ID())
	require.NoError(t, err)

	t.Run("without selections there is no subtotal", func(t *testing.T) {
		view, err := f.handler.Handle(ctx, query)
		require.NoError(t, err)

		assert.True(t, view.ID.IsEqual(f.q.ID()))
		assert.Equal(t, quotation.Quoted, view.Status)
		require.Len(t, view.Parts, 2)
		assert.False(t, view.SelectionComplete)
		assert.Nil(t, view.Subtotal)

		var quotes int
		for _, p := range view.Parts {
			assert.Nil(t, p.SelectedQuoteID)
			for _, pq := range p.Quotes {
				assert.False(t, pq.Expired)
				assert.Equal(t, pgtest.Now.Add(part.QuoteValidity), pq.ValidUntil.UTC())
			}
			quotes += len(p.Quotes)
		}
		assert.Equal(t, 3, quotes)
	})

	t.Run("complete selection has a subtotal", func(t *testing.T) {
		f.selectQuote(t, f.a, f.a.Quotes()[0].ID())
		f.selectQuote(t, f.b, f.b.Quotes()[0].ID())

		view, err := f.handler.Handle(ctx, query)
		require.NoError(t, err)

		assert.True(t, view.SelectionComplete)
		require.NotNil(t, view.Subtotal)
		assert.True(t, view.Subtotal.Equal(pgtest.USD(t, "30.00")))
	})
}

func TestGetQuotationQueryHandler_Handle_Expired(t *testing.T) {
	f := newQuotationFixture(t, func() time.Time { return pgtest.Now.Add(part.QuoteValidity + time.Second) })
	query, err := queries.NewGetQuotationQuery(f.q.ID())
	require.NoError(t, err)

	view, err := f.handler.Handle(t.Context(), query)
	require.NoError(t, err)
	for _, p := range view.Parts {
		for _, pq := range p.Quotes {
			assert.True(t, pq.Expired)
		}
	}
}

func TestGetQuotationQueryHandler_Handle_NotFound(t *testing.T) {
	f := newQuotationFixture(t, nil)
	query, err := queries.NewGetQuotationQuery(kernel.NewUUID())
	require.NoError(t, err)

	_, err = f.handler.Handle(t.Context(), query)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
