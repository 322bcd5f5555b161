// Package ports defines the contracts between the fulfillment core and its adapters:
// ledger repositories, the unit of work, event publishing, execution metrics and the
// dashboard cache.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates together
// with their entitlements.
type OrderRepository interface {
	// Add persists a new order and all its entitlements.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order status and every entitlement's completed quantity
	// and status.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with all its entitlements.
	// Returns *errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with the order row locked until the surrounding
	// transaction ends. Writers of the same order queue behind each other;
	// writers of different orders never contend.
	//
	// Example:
	//   uow.Begin(ctx)
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... mutate, Update, Commit
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes the order and its entitlements. Items must be removed first.
	Delete(ctx context.Context, id kernel.UUID) error

	// GetActiveIDs lists the ids of all orders that are not cancelled.
	GetActiveIDs(ctx context.Context) ([]kernel.UUID, error)
}
