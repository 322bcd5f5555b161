package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOpenServicesQueryIsNotConstructed = errors.New(
		"GetOpenServicesQuery must be created via NewGetOpenServicesQuery constructor",
	)
)

// GetOpenServicesQuery lists every entitlement of the pending and started orders,
// which is the work still owed to customers.
type GetOpenServicesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOpenServicesQuery() GetOpenServicesQuery {
	return GetOpenServicesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOpenServicesQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenServicesQueryIsNotConstructed)
}

// GetOpenServicesQueryResponse is one entitlement of an open order.
type GetOpenServicesQueryResponse struct {
	OrderID     kernel.UUID
	OrderInfo   string
	OrderStatus string
	ServiceLine
}
