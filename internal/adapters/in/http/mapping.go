package http

import (
	"fulfillment/internal/adapters/in/http/api"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

const (
	amountPlaces  = 2
	percentPlaces = 1
)

func amount(d decimal.Decimal) api.Money {
	return d.StringFixed(amountPlaces)
}

func toItem(v queries.ItemView) api.Item {
	return api.Item{
		Id:         v.ID.Bytes(),
		OrderId:    v.OrderID.Bytes(),
		ServiceId:  v.ServiceID.Bytes(),
		Name:       v.Name,
		Price:      amount(v.Price),
		Remark:     v.Remark,
		OccurredAt: v.OccurredAt,
	}
}

func toItems(views []queries.ItemView) []api.Item {
	items := make([]api.Item, 0, len(views))
	for _, v := range views {
		items = append(items, toItem(v))
	}
	return items
}

func toOrderSummary(v queries.OrderSummary) api.OrderSummary {
	return api.OrderSummary{
		Id:              v.ID.Bytes(),
		Info:            v.Info,
		Price:           amount(v.Price),
		DiscountedPrice: amount(v.DiscountedPrice),
		PurchasedAt:     v.PurchasedAt,
		Status:          v.Status.String(),
		Remark:          v.Remark,
	}
}

func toOrderMetrics(m services.OrderMetrics) api.OrderMetrics {
	return api.OrderMetrics{
		UsedCount:               m.UsedCount,
		UsedAmount:              amount(m.UsedAmount),
		RemainingAmount:         amount(m.RemainingAmount),
		EstimatedRemainingCount: m.EstimatedRemainingCount,
		ProgressPercent:         m.ProgressPercent.StringFixed(percentPlaces),
	}
}

func toServiceLine(l queries.ServiceLine) api.ServiceLine {
	return api.ServiceLine{
		ServiceId:   l.ServiceID.Bytes(),
		Description: l.Description,
		Purchased:   l.Purchased,
		Completed:   l.Completed,
		Status:      l.Status,
		Metrics: api.ServiceMetrics{
			UsedCount:       l.Metrics.UsedCount,
			RemainingCount:  l.Metrics.RemainingCount,
			UsedAmount:      amount(l.Metrics.UsedAmount),
			ProgressPercent: l.Metrics.ProgressPercent.StringFixed(percentPlaces),
		},
		Items: toItems(l.Items),
	}
}

func toOrderDetail(v *queries.GetOrderQueryResponse) api.OrderDetail {
	detail := api.OrderDetail{
		Order:    toOrderSummary(v.OrderSummary),
		Services: make([]api.ServiceLine, 0, len(v.Services)),
		Metrics:  toOrderMetrics(v.Metrics),
	}
	for _, line := range v.Services {
		detail.Services = append(detail.Services, toServiceLine(line))
	}
	return detail
}

func toJournalDay(d queries.GetExecutionJournalQueryResponse) api.JournalDay {
	day := api.JournalDay{
		Day:     openapi_types.Date{Time: d.Day},
		Total:   amount(d.Total),
		Entries: make([]api.JournalEntry, 0, len(d.Entries)),
	}
	for _, e := range d.Entries {
		day.Entries = append(day.Entries, api.JournalEntry{
			Item:               toItem(e.ItemView),
			OrderInfo:          e.OrderInfo,
			ServiceDescription: e.ServiceDescription,
		})
	}
	return day
}

func toDashboardStats(v *queries.GetDashboardStatsQueryResponse) api.DashboardStats {
	stats := api.DashboardStats{
		TotalOrders:    v.Summary.TotalOrders,
		TotalAmount:    amount(v.Summary.TotalAmount),
		PendingOrders:  v.Summary.PendingOrders,
		ConsumedAmount: amount(v.Summary.ConsumedAmount),
		RecentOrders:   make([]api.OrderSummary, 0, len(v.RecentOrders)),
	}
	for _, o := range v.RecentOrders {
		stats.RecentOrders = append(stats.RecentOrders, toOrderSummary(o))
	}
	return stats
}
