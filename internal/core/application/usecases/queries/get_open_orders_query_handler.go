package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler retrieves open orders from the database.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrdersQueryHandler creates a handler for open order queries.
func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle returns open orders, most recently purchased first. Status is the
// canonical spelling.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOpenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			info,
			status
		FROM orders
		WHERE LOWER(status) IN ?
		ORDER BY purchased_at DESC, id
	`, openStatuses).Rows()
	if err != nil {
		return nil, errs.NewStoreError("select open orders", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetOpenOrdersQueryResponse
		var id uuid.UUID
		var rawStatus string

		if err = rows.Scan(&id, &orderResp.Info, &rawStatus); err != nil {
			return nil, errs.NewStoreError("scan open order", err)
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID

		status, statusErr := order.ParseStatus(rawStatus)
		if statusErr != nil {
			return nil, statusErr
		}
		orderResp.Status = status.String()
		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStoreError("select open orders", err)
	}

	return orders, nil
}
