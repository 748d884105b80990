package queries_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrdersByStatusQuery(t *testing.T) {
	query, err := queries.NewGetOrdersByStatusQuery(order.Shipped)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, order.Shipped, query.Status())

	_, err = queries.NewGetOrdersByStatusQuery(order.Unknown)
	require.Error(t, err)
}

func TestQueriesNotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, queries.GetOrdersByStatusQuery{}.Validate(), queries.ErrGetOrdersByStatusQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetOrdersForQuotationQuery{}.Validate(), queries.ErrGetOrdersForQuotationQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetQuotationQuery{}.Validate(), queries.ErrGetQuotationQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetProjectsForClientQuery{}.Validate(), queries.ErrGetProjectsForClientQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetQuotationsForProjectQuery{}.Validate(), queries.ErrGetQuotationsForProjectQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetQuotationsByStatusQuery{}.Validate(), queries.ErrGetQuotationsByStatusQueryIsNotConstructed)
}

func TestNewQuotationScopedQueries(t *testing.T) {
	_, err := queries.NewGetQuotationQuery(kernel.UUID{})
	require.Error(t, err)
	_, err = queries.NewGetOrdersForQuotationQuery(kernel.UUID{})
	require.Error(t, err)

	id := kernel.NewUUID()
	q, err := queries.NewGetQuotationQuery(id)
	require.NoError(t, err)
	assert.Equal(t, id, q.QuotationID())
}
