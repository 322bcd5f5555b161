package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/execution"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// openStatuses are the stored spellings of orders that still accept executions.
var openStatuses = []string{order.Pending.String(), order.Started.String()}

// ItemView is one execution item as shown to staff.
type ItemView struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	ServiceID  kernel.UUID
	Name       string
	Price      decimal.Decimal
	Remark     string
	OccurredAt time.Time
}

func newItemView(item *execution.Item) ItemView {
	return ItemView{
		ID:         item.ID(),
		OrderID:    item.OrderID(),
		ServiceID:  item.ServiceID(),
		Name:       item.Name(),
		Price:      item.Price().Amount(),
		Remark:     item.Remark(),
		OccurredAt: item.OccurredAt(),
	}
}

// OrderSummary is the header of an order without its entitlements.
type OrderSummary struct {
	ID              kernel.UUID     `json:"id"`
	Info            string          `json:"info"`
	Price           decimal.Decimal `json:"price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	PurchasedAt     time.Time       `json:"purchased_at"`
	Status          order.Status    `json:"status"`
	Remark          string          `json:"remark"`
}

func newOrderSummary(o *order.Order) OrderSummary {
	return OrderSummary{
		ID:              o.ID(),
		Info:            o.Info(),
		Price:           o.Price().Amount(),
		DiscountedPrice: o.DiscountedPrice().Amount(),
		PurchasedAt:     o.PurchasedAt(),
		Status:          o.Status(),
		Remark:          o.Remark(),
	}
}

// ledgerReader rebuilds orders and items from the ledger tables.
type ledgerReader struct {
	db *gorm.DB
}

// orders loads the orders matching where, newest purchase first, with their
// entitlements. descriptions maps every entitled service to its catalog text.
func (r ledgerReader) orders(
	ctx context.Context,
	where string,
	limit int,
	args ...any,
) (orders []*order.Order, descriptions map[kernel.UUID]string, err error) {
	sql := `
		SELECT id, info, price, discounted_price, purchased_at, status, remark
		FROM orders
		WHERE ` + where + `
		ORDER BY purchased_at DESC, id`
	if limit > 0 {
		sql += " LIMIT ?"
		args = append(args, limit)
	}

	type header struct {
		id          uuid.UUID
		info        string
		price       decimal.Decimal
		discounted  decimal.Decimal
		purchasedAt time.Time
		status      string
		remark      string
	}

	rows, err := r.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, nil, errs.NewStoreError("select orders", err)
	}
	defer rows.Close()

	headers := make([]header, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var h header
		if err = rows.Scan(&h.id, &h.info, &h.price, &h.discounted, &h.purchasedAt, &h.status, &h.remark); err != nil {
			return nil, nil, errs.NewStoreError("scan order", err)
		}
		headers = append(headers, h)
		ids = append(ids, h.id)
	}
	if err = rows.Err(); err != nil {
		return nil, nil, errs.NewStoreError("select orders", err)
	}

	entitlements, descriptions, err := r.entitlements(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	orders = make([]*order.Order, 0, len(headers))
	for _, h := range headers {
		o, restoreErr := restoreOrder(h.id, h.info, h.price, h.discounted, h.purchasedAt, h.status, h.remark,
			entitlements[h.id])
		if restoreErr != nil {
			return nil, nil, restoreErr
		}
		orders = append(orders, o)
	}

	return orders, descriptions, nil
}

func (r ledgerReader) entitlements(
	ctx context.Context,
	orderIDs []uuid.UUID,
) (map[uuid.UUID][]*order.Entitlement, map[kernel.UUID]string, error) {
	byOrder := make(map[uuid.UUID][]*order.Entitlement, len(orderIDs))
	descriptions := make(map[kernel.UUID]string)
	if len(orderIDs) == 0 {
		return byOrder, descriptions, nil
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			os.order_id,
			os.service_id,
			os.purchased_quantity,
			os.completed_quantity,
			s.description
		FROM order_services os
		JOIN services s ON s.id = os.service_id
		WHERE os.order_id IN ?
		ORDER BY s.description, os.service_id
	`, orderIDs).Rows()
	if err != nil {
		return nil, nil, errs.NewStoreError("select entitlements", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID, serviceID uuid.UUID
		var purchased, completed int
		var description string
		if err = rows.Scan(&orderID, &serviceID, &purchased, &completed, &description); err != nil {
			return nil, nil, errs.NewStoreError("scan entitlement", err)
		}

		id, idErr := kernel.UUIDFromBytes(serviceID[:])
		if idErr != nil {
			return nil, nil, idErr
		}
		e, restoreErr := order.RestoreEntitlement(id, purchased, completed)
		if restoreErr != nil {
			return nil, nil, restoreErr
		}

		byOrder[orderID] = append(byOrder[orderID], e)
		descriptions[id] = description
	}
	if err = rows.Err(); err != nil {
		return nil, nil, errs.NewStoreError("select entitlements", err)
	}

	return byOrder, descriptions, nil
}

// items loads the execution items of the given orders, newest first, keyed by order.
func (r ledgerReader) items(ctx context.Context, orderIDs []kernel.UUID) (map[kernel.UUID][]*execution.Item, error) {
	byOrder := make(map[kernel.UUID][]*execution.Item, len(orderIDs))
	if len(orderIDs) == 0 {
		return byOrder, nil
	}

	raw := make([]uuid.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		raw = append(raw, id.Bytes())
	}

	list, err := r.scanItems(ctx, `
		SELECT id, order_id, service_id, name, COALESCE(price, 0), remark, occurred_at
		FROM items
		WHERE order_id IN ?
		ORDER BY occurred_at DESC, id
	`, raw)
	if err != nil {
		return nil, err
	}

	for _, item := range list {
		byOrder[item.OrderID()] = append(byOrder[item.OrderID()], item)
	}
	return byOrder, nil
}

// scanItems runs sql, which must select the item columns in table order with a
// non-null price.
func (r ledgerReader) scanItems(ctx context.Context, sql string, args ...any) ([]*execution.Item, error) {
	rows, err := r.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, errs.NewStoreError("select items", err)
	}
	defer rows.Close()

	items := make([]*execution.Item, 0)
	for rows.Next() {
		var id, orderID, serviceID uuid.UUID
		var name, remark string
		var price decimal.Decimal
		var occurredAt time.Time
		if err = rows.Scan(&id, &orderID, &serviceID, &name, &price, &remark, &occurredAt); err != nil {
			return nil, errs.NewStoreError("scan item", err)
		}

		item, restoreErr := restoreItem(id, orderID, serviceID, name, price, remark, occurredAt)
		if restoreErr != nil {
			return nil, restoreErr
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewStoreError("select items", err)
	}

	return items, nil
}

func restoreOrder(
	rawID uuid.UUID,
	info string,
	rawPrice, rawDiscounted decimal.Decimal,
	purchasedAt time.Time,
	rawStatus, remark string,
	entitlements []*order.Entitlement,
) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(rawID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(rawPrice)
	if err != nil {
		return nil, err
	}
	discounted, err := kernel.NewMoney(rawDiscounted)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, info, price, discounted, purchasedAt, status, remark, entitlements)
}

func restoreItem(
	rawID, rawOrderID, rawServiceID uuid.UUID,
	name string,
	rawPrice decimal.Decimal,
	remark string,
	occurredAt time.Time,
) (*execution.Item, error) {
	id, err := kernel.UUIDFromBytes(rawID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(rawOrderID[:])
	if err != nil {
		return nil, err
	}
	serviceID, err := kernel.UUIDFromBytes(rawServiceID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(rawPrice)
	if err != nil {
		return nil, err
	}

	return execution.RestoreItem(id, orderID, serviceID, name, price, remark, occurredAt)
}

func orderIDs(orders []*order.Order) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	return ids
}

func itemsOfService(items []*execution.Item, serviceID kernel.UUID) []*execution.Item {
	matched := make([]*execution.Item, 0)
	for _, item := range items {
		if item.ServiceID().IsEqual(serviceID) {
			matched = append(matched, item)
		}
	}
	return matched
}
