package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Register a purchased order
	// (POST /orders)
	CreateOrder(ctx echo.Context) error
	// Orders that still accept executions
	// (GET /orders/open)
	GetOpenOrders(ctx echo.Context) error
	// Started orders with consumption and recent items
	// (GET /orders/progress)
	GetOrdersProgress(ctx echo.Context) error
	// Delete an order with its entitlements and items
	// (DELETE /orders/{orderId})
	DeleteOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// One order with per-service consumption
	// (GET /orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Cancel an order
	// (POST /orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Record one service execution against the order
	// (POST /orders/{orderId}/items)
	RecordExecution(ctx echo.Context, orderId openapi_types.UUID) error
	// The service catalog
	// (GET /services)
	GetServices(ctx echo.Context) error
	// Add a catalog entry
	// (POST /services)
	CreateService(ctx echo.Context) error
	// Entitlements of open orders with their consumption
	// (GET /services/open)
	GetOpenServices(ctx echo.Context) error
	// Executions grouped by day
	// (GET /items/journal)
	GetExecutionJournal(ctx echo.Context, params GetExecutionJournalParams) error
	// Fleet totals and the latest orders
	// (GET /dashboard/stats)
	GetDashboardStats(ctx echo.Context) error
	// Executions per month of a year
	// (GET /dashboard/trend)
	GetDashboardTrend(ctx echo.Context, params GetDashboardTrendParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOpenOrders(ctx echo.Context) error {
	return w.Handler.GetOpenOrders(ctx)
}

func (w *ServerInterfaceWrapper) GetOrdersProgress(ctx echo.Context) error {
	return w.Handler.GetOrdersProgress(ctx)
}

func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeleteOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) RecordExecution(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.RecordExecution(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetServices(ctx echo.Context) error {
	return w.Handler.GetServices(ctx)
}

func (w *ServerInterfaceWrapper) CreateService(ctx echo.Context) error {
	return w.Handler.CreateService(ctx)
}

func (w *ServerInterfaceWrapper) GetOpenServices(ctx echo.Context) error {
	return w.Handler.GetOpenServices(ctx)
}

func (w *ServerInterfaceWrapper) GetExecutionJournal(ctx echo.Context) error {
	var params GetExecutionJournalParams

	err := runtime.BindQueryParameter("form", true, false, "from", ctx.QueryParams(), &params.From)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter from: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "to", ctx.QueryParams(), &params.To)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter to: %s", err))
	}

	return w.Handler.GetExecutionJournal(ctx, params)
}

func (w *ServerInterfaceWrapper) GetDashboardStats(ctx echo.Context) error {
	return w.Handler.GetDashboardStats(ctx)
}

func (w *ServerInterfaceWrapper) GetDashboardTrend(ctx echo.Context) error {
	var params GetDashboardTrendParams

	err := runtime.BindQueryParameter("form", true, true, "year", ctx.QueryParams(), &params.Year)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter year: %s", err))
	}

	return w.Handler.GetDashboardTrend(ctx, params)
}

func bindOrderID(ctx echo.Context) (openapi_types.UUID, error) {
	var orderId openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderId, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter under baseURL.
func RegisterHandlers(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/orders/open", wrapper.GetOpenOrders)
	router.GET(baseURL+"/orders/progress", wrapper.GetOrdersProgress)
	router.DELETE(baseURL+"/orders/:orderId", wrapper.DeleteOrder)
	router.GET(baseURL+"/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/orders/:orderId/cancel", wrapper.CancelOrder)
	router.POST(baseURL+"/orders/:orderId/items", wrapper.RecordExecution)
	router.GET(baseURL+"/services", wrapper.GetServices)
	router.POST(baseURL+"/services", wrapper.CreateService)
	router.GET(baseURL+"/services/open", wrapper.GetOpenServices)
	router.GET(baseURL+"/items/journal", wrapper.GetExecutionJournal)
	router.GET(baseURL+"/dashboard/stats", wrapper.GetDashboardStats)
	router.GET(baseURL+"/dashboard/trend", wrapper.GetDashboardTrend)
}
