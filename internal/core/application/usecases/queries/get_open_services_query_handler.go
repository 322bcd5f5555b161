package queries

import (
	"context"

	"fulfillment/internal/core/domain/services"

	"gorm.io/gorm"
)

type GetOpenServicesQueryHandler struct {
	reader     ledgerReader
	calculator services.ConsumptionCalculator
}

func NewGetOpenServicesQueryHandler(db *gorm.DB) GetOpenServicesQueryHandler {
	return GetOpenServicesQueryHandler{
		reader:     ledgerReader{db: db},
		calculator: services.NewConsumptionCalculator(),
	}
}

// Handle returns the entitlements grouped by order, orders newest first and
// entitlements by service description.
func (h GetOpenServicesQueryHandler) Handle(
	ctx context.Context,
	query GetOpenServicesQuery,
) ([]GetOpenServicesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, descriptions, err := h.reader.orders(ctx, "LOWER(status) IN ?", 0, openStatuses)
	if err != nil {
		return nil, err
	}

	items, err := h.reader.items(ctx, orderIDs(orders))
	if err != nil {
		return nil, err
	}

	lines := make([]GetOpenServicesQueryResponse, 0)
	for _, o := range orders {
		view := buildOrderView(h.calculator, o, descriptions, items[o.ID()])
		for _, line := range view.Services {
			lines = append(lines, GetOpenServicesQueryResponse{
				OrderID:     o.ID(),
				OrderInfo:   o.Info(),
				OrderStatus: o.Status().String(),
				ServiceLine: line,
			})
		}
	}

	return lines, nil
}
