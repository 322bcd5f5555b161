package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/execution"
	"fulfillment/internal/core/domain/model/kernel"
)

// ItemRepository stores execution items. Items are append-only; they are only
// removed together with their order.
type ItemRepository interface {
	Add(ctx context.Context, item *execution.Item) error

	// Get returns *errs.ObjectNotFoundError for an unknown id.
	Get(ctx context.Context, id kernel.UUID) (*execution.Item, error)

	// CountByService returns the number of items recorded per service on an order.
	CountByService(ctx context.Context, orderID kernel.UUID) (map[kernel.UUID]int, error)

	// DeleteByOrder removes every item of an order.
	DeleteByOrder(ctx context.Context, orderID kernel.UUID) error
}
