package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetServiceTrendQueryHandler struct {
	db       *gorm.DB
	reporter services.AggregateReporter
}

func NewGetServiceTrendQueryHandler(db *gorm.DB) GetServiceTrendQueryHandler {
	return GetServiceTrendQueryHandler{db: db, reporter: services.NewAggregateReporter()}
}

// Handle buckets items by the UTC month of their execution time.
func (h GetServiceTrendQueryHandler) Handle(
	ctx context.Context,
	query GetServiceTrendQuery,
) (*GetServiceTrendQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	from := time.Date(query.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			EXTRACT(MONTH FROM occurred_at AT TIME ZONE 'UTC')::int AS month,
			COUNT(*)
		FROM items
		WHERE occurred_at >= ? AND occurred_at < ?
		GROUP BY month
	`, from, to).Rows()
	if err != nil {
		return nil, errs.NewStoreError("select monthly trend", err)
	}
	defer rows.Close()

	counts := make([]services.MonthCount, 0, 12)
	for rows.Next() {
		var month int
		var count int64
		if err = rows.Scan(&month, &count); err != nil {
			return nil, errs.NewStoreError("scan monthly trend", err)
		}
		counts = append(counts, services.MonthCount{
			Year:  query.Year(),
			Month: time.Month(month),
			Count: count,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewStoreError("select monthly trend", err)
	}

	return &GetServiceTrendQueryResponse{
		Year:   query.Year(),
		Months: h.reporter.MonthlyTrend(query.Year(), counts),
	}, nil
}
