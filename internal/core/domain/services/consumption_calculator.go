package services

import (
	"fulfillment/internal/core/domain/model/execution"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

const (
	amountPlaces  = 2
	percentPlaces = 1
)

var hundred = decimal.NewFromInt(100)

// ServiceMetrics describes how much of one entitlement has been consumed.
type ServiceMetrics struct {
	UsedCount       int
	RemainingCount  int
	UsedAmount      decimal.Decimal
	ProgressPercent decimal.Decimal
}

// OrderMetrics describes how much of an order's payable value has been consumed.
//
// EstimatedRemainingCount is a projection: the remaining amount divided by the
// average price of the items recorded so far. It is not derived from entitlement
// quantities and can disagree with the sum of ServiceMetrics.RemainingCount.
type OrderMetrics struct {
	UsedCount               int
	UsedAmount              decimal.Decimal
	RemainingAmount         decimal.Decimal
	EstimatedRemainingCount int64
	ProgressPercent         decimal.Decimal
}

// ConsumptionCalculator derives consumption metrics from entitlements and the
// execution items recorded against them.
//
// Example usage:
//
//	calc := services.NewConsumptionCalculator()
//	m := calc.OrderMetrics(o, items)
//	fmt.Println(m.UsedAmount.StringFixed(2), m.ProgressPercent.StringFixed(1))
type ConsumptionCalculator struct{}

// NewConsumptionCalculator creates a new ConsumptionCalculator instance.
func NewConsumptionCalculator() ConsumptionCalculator {
	return ConsumptionCalculator{}
}

// ServiceMetrics computes metrics for one entitlement.
//
// Parameters:
//   - e: the entitlement
//   - items: the execution items recorded for the entitlement's (order, service) pair
//
// Returns:
//   - UsedCount: number of items
//   - RemainingCount: purchased minus completed, never negative
//   - UsedAmount: sum of item prices, rounded to 2 places
//   - ProgressPercent: completed / purchased x 100, rounded to 1 place; 0 when nothing was purchased
func (ConsumptionCalculator) ServiceMetrics(e *order.Entitlement, items []*execution.Item) ServiceMetrics {
	progress := decimal.Zero
	if e.Purchased() > 0 {
		progress = decimal.NewFromInt(int64(e.Completed())).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(e.Purchased())))
	}

	return ServiceMetrics{
		UsedCount:       len(items),
		RemainingCount:  e.Remaining(),
		UsedAmount:      sumPrices(items).Round(amountPlaces),
		ProgressPercent: progress.Round(percentPlaces),
	}
}

// OrderMetrics computes metrics for a whole order against its discounted price.
//
// Parameters:
//   - o: the order
//   - items: every execution item recorded against the order
//
// Returns:
//   - UsedAmount: sum of item prices
//   - RemainingAmount: discounted price minus used amount, floored at zero
//   - EstimatedRemainingCount: remaining / average item price, halves rounded to even; 0 without items or when the average is 0
//   - ProgressPercent: used / discounted price x 100; 0 when the discounted price is 0
func (ConsumptionCalculator) OrderMetrics(o *order.Order, items []*execution.Item) OrderMetrics {
	used := sumPrices(items)
	payable := o.DiscountedPrice().Amount()

	remaining := decimal.Max(payable.Sub(used), decimal.Zero)

	var estimated int64
	if len(items) > 0 && used.IsPositive() {
		// remaining / (used / count)
		estimated = remaining.
			Mul(decimal.NewFromInt(int64(len(items)))).
			Div(used).
			RoundBank(0).
			IntPart()
	}

	progress := decimal.Zero
	if payable.IsPositive() {
		progress = used.Mul(hundred).Div(payable)
	}

	return OrderMetrics{
		UsedCount:               len(items),
		UsedAmount:              used.Round(amountPlaces),
		RemainingAmount:         remaining.Round(amountPlaces),
		EstimatedRemainingCount: estimated,
		ProgressPercent:         progress.Round(percentPlaces),
	}
}

func sumPrices(items []*execution.Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price().Amount())
	}
	return total
}
