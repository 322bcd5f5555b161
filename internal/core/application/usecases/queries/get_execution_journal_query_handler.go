package queries

import (
	"context"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetExecutionJournalQueryHandler struct {
	db *gorm.DB
}

func NewGetExecutionJournalQueryHandler(db *gorm.DB) GetExecutionJournalQueryHandler {
	return GetExecutionJournalQueryHandler{db: db}
}

// Handle groups items by the UTC date of their execution time. Within a day
// entries are newest first.
func (h GetExecutionJournalQueryHandler) Handle(
	ctx context.Context,
	query GetExecutionJournalQuery,
) ([]GetExecutionJournalQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	conditions := []string{"TRUE"}
	args := make([]any, 0, 2)
	if !query.From().IsZero() {
		conditions = append(conditions, "i.occurred_at >= ?")
		args = append(args, query.From())
	}
	if !query.To().IsZero() {
		conditions = append(conditions, "i.occurred_at < ?")
		args = append(args, query.To())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			i.id,
			i.order_id,
			i.service_id,
			i.name,
			COALESCE(i.price, 0),
			i.remark,
			i.occurred_at,
			o.info,
			s.description
		FROM items i
		JOIN orders o ON o.id = i.order_id
		JOIN services s ON s.id = i.service_id
		WHERE `+strings.Join(conditions, " AND ")+`
		ORDER BY i.occurred_at DESC, i.id
	`, args...).Rows()
	if err != nil {
		return nil, errs.NewStoreError("select journal", err)
	}
	defer rows.Close()

	days := make([]GetExecutionJournalQueryResponse, 0)
	for rows.Next() {
		var id, orderID, serviceID uuid.UUID
		var name, remark, orderInfo, description string
		var price decimal.Decimal
		var occurredAt time.Time

		err = rows.Scan(&id, &orderID, &serviceID, &name, &price, &remark, &occurredAt, &orderInfo, &description)
		if err != nil {
			return nil, errs.NewStoreError("scan journal entry", err)
		}

		item, restoreErr := restoreItem(id, orderID, serviceID, name, price, remark, occurredAt)
		if restoreErr != nil {
			return nil, restoreErr
		}

		day := truncateToDay(item.OccurredAt())
		if len(days) == 0 || !days[len(days)-1].Day.Equal(day) {
			days = append(days, GetExecutionJournalQueryResponse{Day: day, Total: decimal.Zero})
		}
		current := &days[len(days)-1]
		current.Total = current.Total.Add(item.Price().Amount())
		current.Entries = append(current.Entries, JournalEntry{
			ItemView:           newItemView(item),
			OrderInfo:          orderInfo,
			ServiceDescription: description,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewStoreError("select journal", err)
	}

	for i := range days {
		days[i].Total = days[i].Total.Round(2)
	}

	return days, nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
