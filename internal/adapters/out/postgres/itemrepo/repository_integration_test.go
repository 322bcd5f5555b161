package itemrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/itemrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/execution"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

type ItemRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *itemrepo.GormItemRepository
	order      *order.Order
	massage    *catalog.Service
	sauna      *catalog.Service
}

func (suite *ItemRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.repository = itemrepo.NewGormItemRepository(pg.DB)
}

func (suite *ItemRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.pg.Truncate())

	catalogRepo := catalogrepo.NewGormCatalogRepository(suite.pg.DB)
	suite.massage, _ = catalog.NewService(kernel.NewUUID(), "Massage", catalog.Classification{}, "")
	suite.sauna, _ = catalog.NewService(kernel.NewUUID(), "Sauna", catalog.Classification{}, "")
	suite.Require().NoError(catalogRepo.Add(ctx, suite.massage))
	suite.Require().NoError(catalogRepo.Add(ctx, suite.sauna))

	price, _ := kernel.MoneyFromString("100.00")
	suite.order, _ = order.NewOrder(kernel.NewUUID(), "Spa", price, price, time.Now(), "")
	suite.Require().NoError(suite.order.AddEntitlement(suite.massage.ID(), 3))
	suite.Require().NoError(suite.order.AddEntitlement(suite.sauna.ID(), 1))
	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.pg.DB, nopTracker{}).Add(ctx, suite.order))
}

func (suite *ItemRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Stop(context.Background()))
}

func (suite *ItemRepositoryIntegrationTestSuite) addItem(serviceID kernel.UUID, price string) *execution.Item {
	money, _ := kernel.MoneyFromString(price)
	item, err := execution.NewItem(kernel.NewUUID(), suite.order.ID(), serviceID, "Session", money, "room 2",
		time.Date(2025, time.March, 3, 9, 30, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), item))
	return item
}

func (suite *ItemRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsItem() {
	item := suite.addItem(suite.massage.ID(), "30.00")

	got, err := suite.repository.Get(context.Background(), item.ID())

	suite.Require().NoError(err)
	suite.True(got.OrderID().IsEqual(suite.order.ID()))
	suite.True(got.ServiceID().IsEqual(suite.massage.ID()))
	suite.Equal("Session", got.Name())
	suite.Equal("30.00", got.Price().String())
	suite.Equal("room 2", got.Remark())
	suite.True(got.OccurredAt().Equal(item.OccurredAt()))
}

func (suite *ItemRepositoryIntegrationTestSuite) TestGet_NullPrice_ReadsAsZero() {
	item := suite.addItem(suite.massage.ID(), "30.00")
	suite.Require().NoError(suite.pg.DB.Exec("UPDATE items SET price = NULL WHERE id = ?", item.ID().Bytes()).Error)

	got, err := suite.repository.Get(context.Background(), item.ID())

	suite.Require().NoError(err)
	suite.True(got.Price().IsZero())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestCountByService_GroupsPerService() {
	suite.addItem(suite.massage.ID(), "30.00")
	suite.addItem(suite.massage.ID(), "20.00")
	suite.addItem(suite.sauna.ID(), "15.00")

	counts, err := suite.repository.CountByService(context.Background(), suite.order.ID())

	suite.Require().NoError(err)
	suite.Equal(map[kernel.UUID]int{
		suite.massage.ID(): 2,
		suite.sauna.ID():   1,
	}, counts)
}

func (suite *ItemRepositoryIntegrationTestSuite) TestCountByService_NoItems_ReturnsEmptyMap() {
	counts, err := suite.repository.CountByService(context.Background(), suite.order.ID())

	suite.Require().NoError(err)
	suite.Empty(counts)
}

func (suite *ItemRepositoryIntegrationTestSuite) TestAdd_ForUnknownOrder_ReturnsStoreError() {
	money, _ := kernel.MoneyFromString("10.00")
	item, _ := execution.NewItem(kernel.NewUUID(), kernel.NewUUID(), suite.massage.ID(), "Session", money, "", time.Now())

	err := suite.repository.Add(context.Background(), item)

	suite.Require().ErrorIs(err, errs.ErrStore)
}

func (suite *ItemRepositoryIntegrationTestSuite) TestDeleteByOrder_RemovesOnlyThatOrdersItems() {
	suite.addItem(suite.massage.ID(), "30.00")
	suite.addItem(suite.sauna.ID(), "15.00")

	suite.Require().NoError(suite.repository.DeleteByOrder(context.Background(), suite.order.ID()))

	var count int64
	suite.Require().NoError(suite.pg.DB.Model(&itemrepo.ItemDTO{}).Count(&count).Error)
	suite.Zero(count)
}

func TestItemRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ItemRepositoryIntegrationTestSuite))
}
