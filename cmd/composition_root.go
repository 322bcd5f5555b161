package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/metrics"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/redis"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	policy     order.OveragePolicy
	logger     *slog.Logger

	registry  *prometheus.Registry
	observer  ports.ExecutionObserver
	publisher ports.EventPublisher
	cache     ports.StatsCache

	closers []func() error
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	policy, err := order.ParseOveragePolicy(config.OveragePolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid OVERAGE_POLICY: %w", err)
	}

	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     policy,
		logger:     logger,
		registry:   metrics.NewRegistry(),
	}
	c.observer = metrics.NewExecutionObserver(c.registry)

	if brokers := config.KafkaBrokers(); len(brokers) > 0 && config.KafkaOrderChangedTopic != "" {
		publisher := kafka.NewEventPublisher(brokers, config.KafkaOrderChangedTopic)
		c.publisher = publisher
		c.closers = append(c.closers, publisher.Close)
	} else {
		logger.Warn("Kafka is not configured, order events are discarded")
		c.publisher = kafka.NopPublisher{}
	}

	if config.RedisAddr != "" {
		ttl, err := config.CacheTTL()
		if err != nil {
			return nil, err
		}
		client := redis.NewClient(config.RedisAddr)
		c.cache = redis.NewStatsCache(client, ttl)
		c.closers = append(c.closers, client.Close)
	}

	return c, nil
}

// Close releases broker and cache connections.
func (c *CompositionRoot) Close() error {
	var errs []error
	for _, closer := range c.closers {
		errs = append(errs, closer())
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) eventDispatcher() commands.EventDispatcher {
	return commands.NewEventDispatcher(c.publisher, c.observer, c.logger)
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateRecordExecutionCommandHandler() commands.RecordExecutionCommandHandler {
	return commands.NewRecordExecutionCommandHandler(c.uow(), c.policy, c.eventDispatcher())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.eventDispatcher())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateAddServiceCommandHandler() commands.AddServiceCommandHandler {
	var f commands.CatalogUoWFactory = FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddServiceCommandHandler(f)
}

func (c *CompositionRoot) CreateReconcileOrdersCommandHandler() commands.ReconcileOrdersCommandHandler {
	return commands.NewReconcileOrdersCommandHandler(c.uow(), c.eventDispatcher())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStartedOrdersProgressQueryHandler() queries.GetStartedOrdersProgressQueryHandler {
	return queries.NewGetStartedOrdersProgressQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOpenServicesQueryHandler() queries.GetOpenServicesQueryHandler {
	return queries.NewGetOpenServicesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetServicesQueryHandler() queries.GetServicesQueryHandler {
	return queries.NewGetServicesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetExecutionJournalQueryHandler() queries.GetExecutionJournalQueryHandler {
	return queries.NewGetExecutionJournalQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDashboardStatsQueryHandler() queries.GetDashboardStatsQueryHandler {
	return queries.NewGetDashboardStatsQueryHandler(c.gormDB, c.cache, c.logger)
}

func (c *CompositionRoot) CreateGetServiceTrendQueryHandler() queries.GetServiceTrendQueryHandler {
	return queries.NewGetServiceTrendQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Commands{
		CreateOrder:     c.CreateCreateOrderCommandHandler(),
		RecordExecution: c.CreateRecordExecutionCommandHandler(),
		CancelOrder:     c.CreateCancelOrderCommandHandler(),
		DeleteOrder:     c.CreateDeleteOrderCommandHandler(),
		AddService:      c.CreateAddServiceCommandHandler(),
	}, httpin.Queries{
		GetOrder:            c.CreateGetOrderQueryHandler(),
		GetOpenOrders:       c.CreateGetOpenOrdersQueryHandler(),
		GetOrdersProgress:   c.CreateGetStartedOrdersProgressQueryHandler(),
		GetOpenServices:     c.CreateGetOpenServicesQueryHandler(),
		GetServices:         c.CreateGetServicesQueryHandler(),
		GetExecutionJournal: c.CreateGetExecutionJournalQueryHandler(),
		GetDashboardStats:   c.CreateGetDashboardStatsQueryHandler(),
		GetServiceTrend:     c.CreateGetServiceTrendQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	return httpin.NewRouter(c.CreateHTTPServer(), c.MetricsHandler(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	reconcile := c.CreateReconcileOrdersCommandHandler()
	return jobs.NewJobManager(&reconcile, c.config.ReconcileSchedule, c.logger)
}

func (c *CompositionRoot) MetricsHandler() http.Handler {
	return metrics.Handler(c.registry)
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
