package queries

import (
	"context"
	"encoding/json"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dashboardStatsCacheKey = "dashboard:stats"

// GetDashboardStatsQueryHandler computes the dashboard through the aggregate
// reporter. When a cache is configured results are served from it until they
// expire; cache failures fall back to the ledger and are only logged.
type GetDashboardStatsQueryHandler struct {
	reader   ledgerReader
	reporter services.AggregateReporter
	cache    ports.StatsCache
	logger   *slog.Logger
}

// NewGetDashboardStatsQueryHandler creates the handler. cache may be nil.
func NewGetDashboardStatsQueryHandler(
	db *gorm.DB,
	cache ports.StatsCache,
	logger *slog.Logger,
) GetDashboardStatsQueryHandler {
	return GetDashboardStatsQueryHandler{
		reader:   ledgerReader{db: db},
		reporter: services.NewAggregateReporter(),
		cache:    cache,
		logger:   logger.With("component", "dashboard_stats"),
	}
}

func (h GetDashboardStatsQueryHandler) Handle(
	ctx context.Context,
	query GetDashboardStatsQuery,
) (*GetDashboardStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if cached, ok := h.fromCache(ctx); ok {
		return cached, nil
	}

	breakdown, err := h.breakdown(ctx)
	if err != nil {
		return nil, err
	}

	recent, _, err := h.reader.orders(ctx, "TRUE", RecentOrdersOnDashboard)
	if err != nil {
		return nil, err
	}

	stats := &GetDashboardStatsQueryResponse{
		Summary:      h.reporter.Summarize(breakdown),
		RecentOrders: make([]OrderSummary, 0, len(recent)),
	}
	for _, o := range recent {
		stats.RecentOrders = append(stats.RecentOrders, newOrderSummary(o))
	}

	h.toCache(ctx, stats)
	return stats, nil
}

func (h GetDashboardStatsQueryHandler) breakdown(ctx context.Context) ([]services.StatusBreakdown, error) {
	rows, err := h.reader.db.WithContext(ctx).Raw(`
		SELECT
			o.status,
			COUNT(*),
			COALESCE(SUM(o.discounted_price), 0),
			COALESCE(SUM(t.items_total), 0)
		FROM orders o
		LEFT JOIN (
			SELECT order_id, SUM(COALESCE(price, 0)) AS items_total
			FROM items
			GROUP BY order_id
		) t ON t.order_id = o.id
		GROUP BY o.status
	`).Rows()
	if err != nil {
		return nil, errs.NewStoreError("select status breakdown", err)
	}
	defer rows.Close()

	breakdown := make([]services.StatusBreakdown, 0)
	for rows.Next() {
		var rawStatus string
		var row services.StatusBreakdown
		var discounted, itemsTotal decimal.Decimal
		if err = rows.Scan(&rawStatus, &row.Orders, &discounted, &itemsTotal); err != nil {
			return nil, errs.NewStoreError("scan status breakdown", err)
		}

		if row.Status, err = order.ParseStatus(rawStatus); err != nil {
			return nil, err
		}
		row.DiscountedTotal = discounted
		row.ItemsTotal = itemsTotal
		breakdown = append(breakdown, row)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewStoreError("select status breakdown", err)
	}

	return breakdown, nil
}

func (h GetDashboardStatsQueryHandler) fromCache(ctx context.Context) (*GetDashboardStatsQueryResponse, bool) {
	if h.cache == nil {
		return nil, false
	}

	raw, found, err := h.cache.Get(ctx, dashboardStatsCacheKey)
	if err != nil {
		h.logger.WarnContext(ctx, "stats cache read failed", "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var stats GetDashboardStatsQueryResponse
	if err = json.Unmarshal(raw, &stats); err != nil {
		h.logger.WarnContext(ctx, "stats cache entry is corrupt", "error", err)
		return nil, false
	}
	return &stats, true
}

func (h GetDashboardStatsQueryHandler) toCache(ctx context.Context, stats *GetDashboardStatsQueryResponse) {
	if h.cache == nil {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		h.logger.WarnContext(ctx, "stats cache encode failed", "error", err)
		return
	}
	if err = h.cache.Set(ctx, dashboardStatsCacheKey, raw); err != nil {
		h.logger.WarnContext(ctx, "stats cache write failed", "error", err)
	}
}
