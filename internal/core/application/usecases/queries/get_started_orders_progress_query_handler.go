package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"gorm.io/gorm"
)

type GetStartedOrdersProgressQueryHandler struct {
	reader     ledgerReader
	calculator services.ConsumptionCalculator
}

func NewGetStartedOrdersProgressQueryHandler(db *gorm.DB) GetStartedOrdersProgressQueryHandler {
	return GetStartedOrdersProgressQueryHandler{
		reader:     ledgerReader{db: db},
		calculator: services.NewConsumptionCalculator(),
	}
}

// Handle returns started orders, most recently purchased first.
func (h GetStartedOrdersProgressQueryHandler) Handle(
	ctx context.Context,
	query GetStartedOrdersProgressQuery,
) ([]GetStartedOrdersProgressQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, _, err := h.reader.orders(ctx, "LOWER(status) = ?", 0, order.Started.String())
	if err != nil {
		return nil, err
	}

	items, err := h.reader.items(ctx, orderIDs(orders))
	if err != nil {
		return nil, err
	}

	progress := make([]GetStartedOrdersProgressQueryResponse, 0, len(orders))
	for _, o := range orders {
		orderItems := items[o.ID()]

		recent := orderItems
		if len(recent) > RecentItemsPerOrder {
			recent = recent[:RecentItemsPerOrder]
		}
		views := make([]ItemView, 0, len(recent))
		for _, item := range recent {
			views = append(views, newItemView(item))
		}

		progress = append(progress, GetStartedOrdersProgressQueryResponse{
			OrderSummary: newOrderSummary(o),
			Metrics:      h.calculator.OrderMetrics(o, orderItems),
			RecentItems:  views,
		})
	}

	return progress, nil
}
