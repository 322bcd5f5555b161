package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/execution"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	massage    *catalog.Service
	sauna      *catalog.Service
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.pg.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.pg.DB, suite.tracker)

	catalogRepo := catalogrepo.NewGormCatalogRepository(suite.pg.DB)
	suite.massage, _ = catalog.NewService(kernel.NewUUID(), "Massage", catalog.Classification{}, "")
	suite.sauna, _ = catalog.NewService(kernel.NewUUID(), "Sauna", catalog.Classification{}, "")
	suite.Require().NoError(catalogRepo.Add(ctx, suite.massage))
	suite.Require().NoError(catalogRepo.Add(ctx, suite.sauna))
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Stop(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder() *order.Order {
	price, _ := kernel.MoneyFromString("120.00")
	paid, _ := kernel.MoneyFromString("99.90")
	o, err := order.NewOrder(kernel.NewUUID(), "Spa bundle", price, paid,
		time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC), "gift")
	suite.Require().NoError(err)
	suite.Require().NoError(o.AddEntitlement(suite.massage.ID(), 2))
	suite.Require().NoError(o.AddEntitlement(suite.sauna.ID(), 1))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsOrderWithEntitlements() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()

	suite.Require().NoError(suite.repository.Add(ctx, o))
	got, err := suite.repository.Get(ctx, o.ID())

	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(o.ID()))
	suite.Equal("Spa bundle", got.Info())
	suite.Equal("120.00", got.Price().String())
	suite.Equal("99.90", got.DiscountedPrice().String())
	suite.True(got.PurchasedAt().Equal(o.PurchasedAt()))
	suite.Equal(order.Pending, got.Status())
	suite.Equal("gift", got.Remark())
	suite.Len(got.Entitlements(), 2)
	e, ok := got.Entitlement(suite.massage.ID())
	suite.Require().True(ok)
	suite.Equal(2, e.Purchased())
	suite.Equal(0, e.Completed())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	got, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(got)
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
	suite.Equal("order_id", notFound.ParamName)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsProgressAndStatus() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.tracker.On("TrackAggregate", o.ID(), o).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	price, _ := kernel.MoneyFromString("30.00")
	item, err := execution.NewItem(kernel.NewUUID(), o.ID(), suite.sauna.ID(), "Sauna", price, "", time.Now())
	suite.Require().NoError(err)
	_, err = o.RecordExecution(item, order.CapOverage)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, o))
	got, err := suite.repository.Get(ctx, o.ID())

	suite.Require().NoError(err)
	suite.Equal(order.Started, got.Status())
	sauna, _ := got.Entitlement(suite.sauna.ID())
	suite.Equal(1, sauna.Completed())
	suite.Equal(order.Used, sauna.Status())

	var stored string
	suite.Require().NoError(suite.pg.DB.Raw(
		"SELECT status FROM order_services WHERE order_id = ? AND service_id = ?",
		o.ID().Bytes(), suite.sauna.ID().Bytes()).Scan(&stored).Error)
	suite.Equal("used", stored)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ReadsLegacyCancelSpelling() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()
	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Require().NoError(suite.pg.DB.Exec("UPDATE orders SET status = 'Cancel' WHERE id = ?", o.ID().Bytes()).Error)

	got, err := suite.repository.Get(ctx, o.ID())

	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, got.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RederivesStaleStatus() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()
	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Require().NoError(suite.pg.DB.Exec(
		"UPDATE order_services SET completed_quantity = purchased_quantity, status = 'pending' WHERE order_id = ?",
		o.ID().Bytes()).Error)

	got, err := suite.repository.Get(ctx, o.ID())

	suite.Require().NoError(err)
	suite.Equal(order.Used, got.Status())
	for _, e := range got.Entitlements() {
		suite.Equal(order.Used, e.Status())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_RemovesOrderAndEntitlements() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(suite.repository.Delete(ctx, o.ID()))

	var count int64
	suite.Require().NoError(suite.pg.DB.Model(&orderrepo.EntitlementDTO{}).Count(&count).Error)
	suite.Zero(count)
	_, err := suite.repository.Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Require().ErrorIs(suite.repository.Delete(ctx, o.ID()), errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetActiveIDs_SkipsCancelled() {
	ctx := context.Background()
	active, cancelled := suite.newOrder(), suite.newOrder()
	cancelled.Cancel()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, active))
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	ids, err := suite.repository.GetActiveIDs(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(ids, 1)
	suite.True(ids[0].IsEqual(active.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnknownServiceFailsWithStoreError() {
	price, _ := kernel.MoneyFromString("10.00")
	o, _ := order.NewOrder(kernel.NewUUID(), "Orphan", price, price, time.Now(), "")
	suite.Require().NoError(o.AddEntitlement(kernel.NewUUID(), 1))

	err := suite.repository.Add(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrStore)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
