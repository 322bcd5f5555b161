package queries

import (
	"errors"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetDashboardStatsQueryIsNotConstructed = errors.New(
		"GetDashboardStatsQuery must be created via NewGetDashboardStatsQuery constructor",
	)
)

// RecentOrdersOnDashboard is the number of latest orders shown with the totals.
const RecentOrdersOnDashboard = 5

// GetDashboardStatsQuery retrieves fleet-wide totals and the latest orders.
type GetDashboardStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetDashboardStatsQuery() GetDashboardStatsQuery {
	return GetDashboardStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetDashboardStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardStatsQueryIsNotConstructed)
}

type GetDashboardStatsQueryResponse struct {
	Summary      services.FleetSummary `json:"summary"`
	RecentOrders []OrderSummary        `json:"recent_orders"`
}
