package itemrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/execution"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormItemRepository struct {
	db *gorm.DB
}

func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

func (r *GormItemRepository) Add(ctx context.Context, item *execution.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewStoreError("insert item", err)
	}

	return nil
}

func (r *GormItemRepository) Get(ctx context.Context, id kernel.UUID) (*execution.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("item_id", id.String())
		}
		return nil, errs.NewStoreError("select item", err)
	}

	return toDomain(dto)
}

func (r *GormItemRepository) CountByService(ctx context.Context, orderID kernel.UUID) (map[kernel.UUID]int, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var rows []struct {
		ServiceID uuid.UUID
		Count     int
	}
	err := r.db.WithContext(ctx).
		Model(&ItemDTO{}).
		Select("service_id, COUNT(*) AS count").
		Where("order_id = ?", orderID.Bytes()).
		Group("service_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errs.NewStoreError("count items", err)
	}

	counts := make(map[kernel.UUID]int, len(rows))
	for _, row := range rows {
		serviceID, idErr := kernel.UUIDFromBytes(row.ServiceID[:])
		if idErr != nil {
			return nil, idErr
		}
		counts[serviceID] = row.Count
	}

	return counts, nil
}

func (r *GormItemRepository) DeleteByOrder(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes()).Delete(&ItemDTO{}).Error; err != nil {
		return errs.NewStoreError("delete items", err)
	}

	return nil
}
