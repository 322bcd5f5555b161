package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewStoreError("insert order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order status and every entitlement's progress.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status": dto.Status,
		"remark": dto.Remark,
	})
	if result.Error != nil {
		return errs.NewStoreError("update order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order_id", aggregate.ID().String())
	}

	for _, e := range dto.Entitlements {
		err := db.Model(&EntitlementDTO{}).
			Where("order_id = ? AND service_id = ?", e.OrderID, e.ServiceID).
			Updates(map[string]any{
				"completed_quantity": e.CompletedQuantity,
				"status":             e.Status,
			}).Error
		if err != nil {
			return errs.NewStoreError("update entitlement", err)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate locks the order row with SELECT ... FOR UPDATE. The lock is held
// until the surrounding transaction commits or rolls back, so it must be called
// on a repository bound to a transaction.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", id.Bytes()).Delete(&EntitlementDTO{}).Error; err != nil {
		return errs.NewStoreError("delete entitlements", err)
	}

	result := db.Where("id = ?", id.Bytes()).Delete(&OrderDTO{})
	if result.Error != nil {
		return errs.NewStoreError("delete order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order_id", id.String())
	}

	return nil
}

func (r *GormOrderRepository) GetActiveIDs(ctx context.Context) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("LOWER(status) NOT IN ?", []string{order.Cancelled.String(), "cancel"}).
		Order("purchased_at").
		Pluck("id", &raw).Error
	if err != nil {
		return nil, errs.NewStoreError("list active orders", err)
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, orderID)
	}

	return ids, nil
}

func (r *GormOrderRepository) load(ctx context.Context, query *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order_id", id.String())
		}
		return nil, errs.NewStoreError("select order", err)
	}

	err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Order("service_id").
		Find(&dto.Entitlements).Error
	if err != nil {
		return nil, errs.NewStoreError("select entitlements", err)
	}

	return toDomain(dto)
}
