package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order with the consumption of each of its services.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	fmt.Printf("%s: %s%% consumed\n", view.Info, view.Metrics.ProgressPercent.StringFixed(1))
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// ServiceLine is one entitlement of an order with its consumption.
type ServiceLine struct {
	ServiceID   kernel.UUID
	Description string
	Purchased   int
	Completed   int
	Status      string
	Metrics     services.ServiceMetrics
	Items       []ItemView
}

// GetOrderQueryResponse is the full read model of one order.
type GetOrderQueryResponse struct {
	OrderSummary
	Services []ServiceLine
	Metrics  services.OrderMetrics
	// ItemsTotal is the sum of all item prices, unrounded.
	ItemsTotal decimal.Decimal
}
