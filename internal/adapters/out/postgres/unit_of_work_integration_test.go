package postgres_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/itemrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/ddd"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type uowFactory struct {
	factory *postgres.GormUnitOfWorkFactory
}

func (f uowFactory) Create() commands.UoW {
	return f.factory.Create()
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, ...ddd.DomainEvent) error { return nil }

type nopObserver struct{}

func (nopObserver) ExecutionRecorded(time.Duration, bool) {}
func (nopObserver) ExecutionRejected(string) {}
func (nopObserver) OrderStatusChanged(string, string) {}

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory *postgres.GormUnitOfWorkFactory
	massage *catalog.Service
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.factory = postgres.NewGormUnitOfWorkFactory(pg.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())

	suite.massage, _ = catalog.NewService(kernel.NewUUID(), "Massage", catalog.Classification{}, "")
	suite.Require().NoError(suite.factory.Create().CatalogRepository().Add(context.Background(), suite.massage))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Stop(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(quantity int) *order.Order {
	price, _ := kernel.MoneyFromString("100.00")
	o, err := order.NewOrder(kernel.NewUUID(), "Massage course", price, price, time.Now(), "")
	suite.Require().NoError(err)
	suite.Require().NoError(o.AddEntitlement(suite.massage.ID(), quantity))
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) storeOrder(quantity int) *order.Order {
	o := suite.newOrder(quantity)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(context.Background(), o))
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) recorder(policy order.OveragePolicy) commands.RecordExecutionCommandHandler {
	dispatcher := commands.NewEventDispatcher(nopPublisher{}, nopObserver{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return commands.NewRecordExecutionCommandHandler(uowFactory{factory: suite.factory}, policy, dispatcher)
}

func (suite *UnitOfWorkIntegrationTestSuite) itemCount(orderID kernel.UUID) int64 {
	var count int64
	suite.Require().NoError(suite.pg.DB.Model(&itemrepo.ItemDTO{}).
		Where("order_id = ?", orderID.Bytes()).Count(&count).Error)
	return count
}

func (suite *UnitOfWorkIntegrationTestSuite) TestReconcile_RepairsStaleStoredStatuses() {
	ctx := context.Background()
	o := suite.storeOrder(1)
	recorder := suite.recorder(order.CapOverage)
	price, _ := kernel.MoneyFromString("40.00")
	cmd, err := commands.NewRecordExecutionCommand(kernel.NewUUID(), o.ID(), suite.massage.ID(), "", price, "", time.Now())
	suite.Require().NoError(err)
	_, err = recorder.Handle(ctx, cmd)
	suite.Require().NoError(err)

	// counts are right, the cached statuses are not
	suite.Require().NoError(suite.pg.DB.Exec("UPDATE orders SET status = 'pending' WHERE id = ?", o.ID().Bytes()).Error)
	suite.Require().NoError(suite.pg.DB.Exec(
		"UPDATE order_services SET status = 'pending' WHERE order_id = ?", o.ID().Bytes()).Error)

	dispatcher := commands.NewEventDispatcher(nopPublisher{}, nopObserver{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	reconciler := commands.NewReconcileOrdersCommandHandler(uowFactory{factory: suite.factory}, dispatcher)

	repaired, err := reconciler.Handle(ctx, commands.NewReconcileOrdersCommand())

	suite.Require().NoError(err)
	suite.Equal(1, repaired)
	var orderStatus, entitlementStatus string
	suite.Require().NoError(suite.pg.DB.Raw("SELECT status FROM orders WHERE id = ?", o.ID().Bytes()).
		Scan(&orderStatus).Error)
	suite.Require().NoError(suite.pg.DB.Raw("SELECT status FROM order_services WHERE order_id = ?", o.ID().Bytes()).
		Scan(&entitlementStatus).Error)
	suite.Equal("used", orderStatus)
	suite.Equal("used", entitlementStatus)

	repaired, err = reconciler.Handle(ctx, commands.NewReconcileOrdersCommand())
	suite.Require().NoError(err)
	suite.Zero(repaired)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAndTracksAggregate() {
	ctx := context.Background()
	uow := suite.factory.CreateGorm()
	o := suite.newOrder(1)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal([]kernel.UUID{o.ID()}, uow.TrackedIDs())
	got, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(got.IsEqual(o))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWritesAndTracking() {
	ctx := context.Background()
	uow := suite.factory.CreateGorm()
	o := suite.newOrder(1)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Empty(uow.TrackedIDs())
	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_Fails() {
	suite.Require().Error(suite.factory.Create().Commit(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_AfterCommit_IsHarmless() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().Error(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRecordExecution_FailedItemInsertLeavesEntitlementUntouched() {
	ctx := context.Background()
	o := suite.storeOrder(2)
	recorder := suite.recorder(order.CapOverage)
	price, _ := kernel.MoneyFromString("40.00")
	itemID := kernel.NewUUID()

	first, err := commands.NewRecordExecutionCommand(itemID, o.ID(), suite.massage.ID(), "", price, "", time.Now())
	suite.Require().NoError(err)
	_, err = recorder.Handle(ctx, first)
	suite.Require().NoError(err)

	// same item id violates the primary key
	_, err = recorder.Handle(ctx, first)
	suite.Require().ErrorIs(err, errs.ErrStore)

	got, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	e, _ := got.Entitlement(suite.massage.ID())
	suite.Equal(1, e.Completed())
	suite.Equal(order.Started, got.Status())
	suite.Equal(int64(1), suite.itemCount(o.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRecordExecution_ConcurrentOnSameEntitlementNeverLosesProgress() {
	ctx := context.Background()
	const purchased, attempts = 3, 8
	o := suite.storeOrder(purchased)
	recorder := suite.recorder(order.CapOverage)
	price, _ := kernel.MoneyFromString("10.00")

	var wg sync.WaitGroup
	errCh := make(chan error, attempts)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewRecordExecutionCommand(kernel.NewUUID(), o.ID(), suite.massage.ID(), "", price, "", time.Now())
			if err == nil {
				_, err = recorder.Handle(ctx, cmd)
			}
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		suite.Require().NoError(err)
	}

	got, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	e, _ := got.Entitlement(suite.massage.ID())
	suite.Equal(purchased, e.Completed())
	suite.Equal(order.Used, got.Status())
	suite.Equal(int64(attempts), suite.itemCount(o.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRecordExecution_ConcurrentUnderRejectAcceptsExactlyPurchased() {
	ctx := context.Background()
	const purchased, attempts = 3, 8
	o := suite.storeOrder(purchased)
	recorder := suite.recorder(order.RejectOverage)
	price, _ := kernel.MoneyFromString("10.00")

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted, exhausted := 0, 0
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, _ := commands.NewRecordExecutionCommand(kernel.NewUUID(), o.ID(), suite.massage.ID(), "", price, "", time.Now())
			_, err := recorder.Handle(ctx, cmd)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, order.ErrEntitlementExhausted):
				exhausted++
			}
		}()
	}
	wg.Wait()

	suite.Equal(purchased, accepted)
	suite.Equal(attempts-purchased, exhausted)
	suite.Equal(int64(purchased), suite.itemCount(o.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRecordExecution_DifferentOrdersInParallel() {
	ctx := context.Background()
	recorder := suite.recorder(order.CapOverage)
	price, _ := kernel.MoneyFromString("10.00")

	orders := make([]*order.Order, 4)
	for i := range orders {
		orders[i] = suite.storeOrder(2)
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(orders)*2)
	for _, o := range orders {
		for range 2 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				cmd, _ := commands.NewRecordExecutionCommand(kernel.NewUUID(), o.ID(), suite.massage.ID(), "", price, "", time.Now())
				_, err := recorder.Handle(ctx, cmd)
				errCh <- err
			}()
		}
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		suite.Require().NoError(err)
	}
	for _, o := range orders {
		got, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
		suite.Require().NoError(err)
		suite.Equal(order.Used, got.Status())
	}
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
