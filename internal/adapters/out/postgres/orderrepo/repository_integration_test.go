package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.StartPostgres(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(quotationID kernel.UUID, amount string, deadline time.Time) *order.Order {
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), quotationID, kernel.NewUUID(), kernel.NewUUID(),
		pgtest.USD(suite.T(), amount), deadline, pgtest.Now,
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTrip() {
	ctx := context.Background()
	o := suite.createTestOrder(kernel.NewUUID(), "1234.5678", time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC))
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()

	suite.Require().NoError(suite.repository.Add(ctx, o))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsEqual(o))
	suite.Equal("1234.5678", stored.Payment().Amount().String())
	suite.Equal("USD", stored.Payment().Currency())
	suite.Equal(o.Deadline(), stored.Deadline())
	suite.Equal(order.Created, stored.Status())
	suite.Nil(stored.Payout())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus() {
	ctx := context.Background()
	o := suite.createTestOrder(kernel.NewUUID(), "10", pgtest.Now)
	suite.tracker.On("TrackAggregate", o.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(suite.repository.UpdateStatus(ctx, o.ID(), order.Created, order.InProgress, pgtest.Now))

	err := suite.repository.UpdateStatus(ctx, o.ID(), order.Created, order.InProgress, pgtest.Now)
	suite.Require().ErrorIs(err, errs.ErrConditionalCheckFailed)

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProgress, stored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdatePayout_KeepsStatus() {
	ctx := context.Background()
	o := suite.createTestOrder(kernel.NewUUID(), "10", pgtest.Now)
	suite.tracker.On("TrackAggregate", o.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(suite.repository.UpdatePayout(ctx, o.ID(), pgtest.USD(suite.T(), "8.25"), pgtest.Now))
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, o.ID(), order.Created, order.InProgress, pgtest.Now))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProgress, stored.Status())
	suite.Require().NotNil(stored.Payout())
	suite.Equal("8.25 USD", stored.Payout().String())

	err = suite.repository.UpdatePayout(ctx, kernel.NewUUID(), pgtest.USD(suite.T(), "1"), pgtest.Now)
	suite.Require().ErrorIs(err, errs.ErrConditionalCheckFailed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByQuotationAndStatus() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	quotationID := kernel.NewUUID()
	late := suite.createTestOrder(quotationID, "10", time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC))
	early := suite.createTestOrder(quotationID, "20", time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC))
	other := suite.createTestOrder(kernel.NewUUID(), "30", time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC))
	for _, o := range []*order.Order{late, early, other} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, other.ID(), order.Created, order.InProgress, pgtest.Now))

	byQuotation, err := suite.repository.ListByQuotation(ctx, quotationID)
	suite.Require().NoError(err)
	suite.Len(byQuotation, 2)

	created, err := suite.repository.ListByStatus(ctx, order.Created)
	suite.Require().NoError(err)
	suite.Require().Len(created, 2)
	suite.True(created[0].IsEqual(early))
	suite.True(created[1].IsEqual(late))

	inProgress, err := suite.repository.ListByStatus(ctx, order.InProgress)
	suite.Require().NoError(err)
	suite.Require().Len(inProgress, 1)
	suite.True(inProgress[0].IsEqual(other))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
