package order

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/ddd"

	"github.com/shopspring/decimal"
)

const (
	ExecutionRecordedEventName  = "order.execution_recorded"
	OrderStatusChangedEventName = "order.status_changed"
)

// ExecutionRecordedEvent is raised for every execution item accepted by an order.
type ExecutionRecordedEvent struct {
	ddd.BaseEvent
	OrderID   kernel.UUID     `json:"order_id"`
	ServiceID kernel.UUID     `json:"service_id"`
	ItemID    kernel.UUID     `json:"item_id"`
	Price     decimal.Decimal `json:"price"`
	Completed int             `json:"completed_quantity"`
	Purchased int             `json:"purchased_quantity"`
	Overage   bool            `json:"overage"`
}

func (e ExecutionRecordedEvent) AggregateKey() string {
	return e.OrderID.String()
}

// StatusChangedEvent is raised whenever the stored order status changes.
type StatusChangedEvent struct {
	ddd.BaseEvent
	OrderID kernel.UUID `json:"order_id"`
	From    string      `json:"from"`
	To      string      `json:"to"`
}

func (e StatusChangedEvent) AggregateKey() string {
	return e.OrderID.String()
}
