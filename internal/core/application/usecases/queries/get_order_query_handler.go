package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/execution"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler loads an order, its entitlements and items, and runs them
// through the consumption calculator.
type GetOrderQueryHandler struct {
	reader     ledgerReader
	calculator services.ConsumptionCalculator
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		reader:     ledgerReader{db: db},
		calculator: services.NewConsumptionCalculator(),
	}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, descriptions, err := h.reader.orders(ctx, "id = ?", 1, query.OrderID().Bytes())
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, errs.NewObjectNotFoundError("order_id", query.OrderID().String())
	}
	o := orders[0]

	items, err := h.reader.items(ctx, []kernel.UUID{o.ID()})
	if err != nil {
		return nil, err
	}

	view := buildOrderView(h.calculator, o, descriptions, items[o.ID()])
	return &view, nil
}

func buildOrderView(
	calculator services.ConsumptionCalculator,
	o *order.Order,
	descriptions map[kernel.UUID]string,
	items []*execution.Item,
) GetOrderQueryResponse {
	view := GetOrderQueryResponse{
		OrderSummary: newOrderSummary(o),
		Services:     make([]ServiceLine, 0, len(o.Entitlements())),
		Metrics:      calculator.OrderMetrics(o, items),
		ItemsTotal:   decimal.Zero,
	}

	for _, item := range items {
		view.ItemsTotal = view.ItemsTotal.Add(item.Price().Amount())
	}

	for _, e := range o.Entitlements() {
		serviceItems := itemsOfService(items, e.ServiceID())
		line := ServiceLine{
			ServiceID:   e.ServiceID(),
			Description: descriptions[e.ServiceID()],
			Purchased:   e.Purchased(),
			Completed:   e.Completed(),
			Status:      e.Status().String(),
			Metrics:     calculator.ServiceMetrics(e, serviceItems),
			Items:       make([]ItemView, 0, len(serviceItems)),
		}
		for _, item := range serviceItems {
			line.Items = append(line.Items, newItemView(item))
		}
		view.Services = append(view.Services, line)
	}

	return view
}
