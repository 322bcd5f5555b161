package queries

import (
	"errors"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetStartedOrdersProgressQueryIsNotConstructed = errors.New(
		"GetStartedOrdersProgressQuery must be created via NewGetStartedOrdersProgressQuery constructor",
	)
)

// RecentItemsPerOrder caps the item history returned with each started order.
const RecentItemsPerOrder = 12

// GetStartedOrdersProgressQuery lists the orders in progress with how much of
// each has been consumed.
type GetStartedOrdersProgressQuery struct {
	guard guard.ConstructorGuard
}

func NewGetStartedOrdersProgressQuery() GetStartedOrdersProgressQuery {
	return GetStartedOrdersProgressQuery{guard: guard.NewConstructorGuard()}
}

func (q GetStartedOrdersProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetStartedOrdersProgressQueryIsNotConstructed)
}

// GetStartedOrdersProgressQueryResponse is one started order. RecentItems holds
// at most RecentItemsPerOrder items, newest first; Metrics covers all of them.
type GetStartedOrdersProgressQueryResponse struct {
	OrderSummary
	Metrics     services.OrderMetrics
	RecentItems []ItemView
}
