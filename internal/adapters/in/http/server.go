package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"fulfillment/internal/adapters/in/http/api"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Commands are the write use cases behind the API.
type Commands struct {
	CreateOrder     commands.CreateOrderCommandHandler
	RecordExecution commands.RecordExecutionCommandHandler
	CancelOrder     commands.CancelOrderCommandHandler
	DeleteOrder     commands.DeleteOrderCommandHandler
	AddService      commands.AddServiceCommandHandler
}

// Queries are the read use cases behind the API.
type Queries struct {
	GetOrder            queries.GetOrderQueryHandler
	GetOpenOrders       queries.GetOpenOrdersQueryHandler
	GetOrdersProgress   queries.GetStartedOrdersProgressQueryHandler
	GetOpenServices     queries.GetOpenServicesQueryHandler
	GetServices         queries.GetServicesQueryHandler
	GetExecutionJournal queries.GetExecutionJournalQueryHandler
	GetDashboardStats   queries.GetDashboardStatsQueryHandler
	GetServiceTrend     queries.GetServiceTrendQueryHandler
}

// Server implements api.ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	commands Commands
	queries  Queries
	logger   *slog.Logger
}

var _ api.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(cmds Commands, qs Queries, logger *slog.Logger) *Server {
	return &Server{
		commands: cmds,
		queries:  qs,
		logger:   logger.With("component", "http"),
	}
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body api.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
	}

	price, priceErr := kernel.ParseMoney("price", body.Price)
	discounted, discountedErr := kernel.ParseMoney("discounted_price", body.DiscountedPrice)
	if err := errors.Join(priceErr, discountedErr); err != nil {
		return s.fail(ctx, err)
	}

	lines := make([]commands.EntitlementLine, 0, len(body.Services))
	for _, line := range body.Services {
		lines = append(lines, commands.EntitlementLine{
			ServiceID: toKernelUUID(line.ServiceId),
			Quantity:  line.Quantity,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, body.Info, price, discounted, body.PurchasedAt,
		deref(body.Remark), lines)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.commands.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, api.Created{Id: orderID.Bytes()})
}

// GetOpenOrders handles GET /api/orders/open.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	orders, err := s.queries.GetOpenOrders.Handle(ctx.Request().Context(), queries.NewGetOpenOrdersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]api.OpenOrder, len(orders))
	for i, o := range orders {
		response[i] = api.OpenOrder{
			Id:     o.ID.Bytes(),
			Info:   o.Info,
			Status: o.Status,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrdersProgress handles GET /api/orders/progress.
func (s *Server) GetOrdersProgress(ctx echo.Context) error {
	progress, err := s.queries.GetOrdersProgress.Handle(ctx.Request().Context(),
		queries.NewGetStartedOrdersProgressQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]api.OrderProgress, len(progress))
	for i, p := range progress {
		response[i] = api.OrderProgress{
			Order:       toOrderSummary(p.OrderSummary),
			Metrics:     toOrderMetrics(p.Metrics),
			RecentItems: toItems(p.RecentItems),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	query, err := queries.NewGetOrderQuery(toKernelUUID(orderId))
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.queries.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderDetail(view))
}

// CancelOrder handles POST /api/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	cmd, err := commands.NewCancelOrderCommand(toKernelUUID(orderId))
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.commands.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/orders/{orderId}.
func (s *Server) DeleteOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	cmd, err := commands.NewDeleteOrderCommand(toKernelUUID(orderId))
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.commands.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordExecution handles POST /api/orders/{orderId}/items.
func (s *Server) RecordExecution(ctx echo.Context, orderId openapi_types.UUID) error {
	var body api.NewItem
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
	}

	price, err := kernel.ParseMoney("price", body.Price)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRecordExecutionCommand(
		kernel.NewUUID(),
		toKernelUUID(orderId),
		toKernelUUID(body.ServiceId),
		deref(body.Name),
		price,
		deref(body.Remark),
		body.OccurredAt,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	item, err := s.commands.RecordExecution.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, api.Item{
		Id:         item.ID().Bytes(),
		OrderId:    item.OrderID().Bytes(),
		ServiceId:  item.ServiceID().Bytes(),
		Name:       item.Name(),
		Price:      amount(item.Price().Amount()),
		Remark:     item.Remark(),
		OccurredAt: item.OccurredAt(),
	})
}

// GetServices handles GET /api/services.
func (s *Server) GetServices(ctx echo.Context) error {
	catalogEntries, err := s.queries.GetServices.Handle(ctx.Request().Context(), queries.NewGetServicesQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]api.Service, len(catalogEntries))
	for i, entry := range catalogEntries {
		response[i] = api.Service{
			Id:          entry.ID.Bytes(),
			Description: entry.Description,
			Package:     entry.Package,
			Type:        entry.Type,
			Part:        entry.Part,
			Remark:      entry.Remark,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateService handles POST /api/services.
func (s *Server) CreateService(ctx echo.Context) error {
	var body api.NewService
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
	}

	serviceID := kernel.NewUUID()
	cmd, err := commands.NewAddServiceCommand(serviceID, body.Description, catalog.Classification{
		Package: deref(body.Package),
		Type:    deref(body.Type),
		Part:    deref(body.Part),
	}, deref(body.Remark))
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.commands.AddService.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, api.Created{Id: serviceID.Bytes()})
}

// GetOpenServices handles GET /api/services/open.
func (s *Server) GetOpenServices(ctx echo.Context) error {
	lines, err := s.queries.GetOpenServices.Handle(ctx.Request().Context(), queries.NewGetOpenServicesQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]api.OpenService, len(lines))
	for i, line := range lines {
		response[i] = api.OpenService{
			OrderId:     line.OrderID.Bytes(),
			OrderInfo:   line.OrderInfo,
			OrderStatus: line.OrderStatus,
			Service:     toServiceLine(line.ServiceLine),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetExecutionJournal handles GET /api/items/journal.
func (s *Server) GetExecutionJournal(ctx echo.Context, params api.GetExecutionJournalParams) error {
	var from, to time.Time
	if params.From != nil {
		from = params.From.Time
	}
	if params.To != nil {
		to = params.To.Time
	}

	query, err := queries.NewGetExecutionJournalQuery(from, to)
	if err != nil {
		return s.fail(ctx, err)
	}

	days, err := s.queries.GetExecutionJournal.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]api.JournalDay, len(days))
	for i, day := range days {
		response[i] = toJournalDay(day)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDashboardStats handles GET /api/dashboard/stats.
func (s *Server) GetDashboardStats(ctx echo.Context) error {
	stats, err := s.queries.GetDashboardStats.Handle(ctx.Request().Context(), queries.NewGetDashboardStatsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDashboardStats(stats))
}

// GetDashboardTrend handles GET /api/dashboard/trend?year=.
func (s *Server) GetDashboardTrend(ctx echo.Context, params api.GetDashboardTrendParams) error {
	query, err := queries.NewGetServiceTrendQuery(params.Year)
	if err != nil {
		return s.fail(ctx, err)
	}

	trend, err := s.queries.GetServiceTrend.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, api.Trend{
		Year:   trend.Year,
		Months: trend.Months[:],
	})
}

func toKernelUUID(id openapi_types.UUID) kernel.UUID {
	// a zero id fails the command constructors' validation
	converted, _ := kernel.UUIDFromBytes(id[:])
	return converted
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
