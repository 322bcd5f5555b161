package services

import (
	"time"

	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// StatusBreakdown is one row of per-status order totals as read from the ledger.
type StatusBreakdown struct {
	Status order.Status
	// Orders is the number of orders in Status.
	Orders int64
	// DiscountedTotal is the sum of their discounted prices.
	DiscountedTotal decimal.Decimal
	// ItemsTotal is the sum of the prices of all items recorded against them.
	ItemsTotal decimal.Decimal
}

// FleetSummary holds the dashboard totals across all orders.
type FleetSummary struct {
	TotalOrders    int64
	TotalAmount    decimal.Decimal
	PendingOrders  int64
	ConsumedAmount decimal.Decimal
}

// MonthCount is the number of execution items recorded in one calendar month.
type MonthCount struct {
	Year  int
	Month time.Month
	Count int64
}

// AggregateReporter rolls per-order figures up into fleet-wide summaries.
type AggregateReporter struct{}

func NewAggregateReporter() AggregateReporter {
	return AggregateReporter{}
}

// Summarize folds per-status totals into a FleetSummary.
//
// ConsumedAmount mixes granularities: finished (used) orders count with their
// whole discounted price, in-progress (started) orders with the prices of the
// items delivered so far. Pending and cancelled orders contribute nothing.
// An empty breakdown yields zero totals.
func (AggregateReporter) Summarize(breakdown []StatusBreakdown) FleetSummary {
	var s FleetSummary
	total, consumed := decimal.Zero, decimal.Zero

	for _, row := range breakdown {
		s.TotalOrders += row.Orders
		total = total.Add(row.DiscountedTotal)

		switch row.Status {
		case order.Pending:
			s.PendingOrders += row.Orders
		case order.Used:
			consumed = consumed.Add(row.DiscountedTotal)
		case order.Started:
			consumed = consumed.Add(row.ItemsTotal)
		default:
		}
	}

	s.TotalAmount = total.Round(amountPlaces)
	s.ConsumedAmount = consumed.Round(amountPlaces)
	return s
}

// MonthlyTrend returns item counts for January through December of year.
// Months without items report 0; counts of other years are ignored.
func (AggregateReporter) MonthlyTrend(year int, counts []MonthCount) [12]int64 {
	var trend [12]int64
	for _, c := range counts {
		if c.Year != year || c.Month < time.January || c.Month > time.December {
			continue
		}
		trend[c.Month-1] += c.Count
	}
	return trend
}
