package itemrepo

import (
	"time"

	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/execution"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemDTO is one execution item. Price is nullable: rows imported from older
// ledgers may carry no price and read back as zero.
type ItemDTO struct {
	ID         uuid.UUID           `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID           `gorm:"type:uuid;not null;index:idx_items_order_service"`
	ServiceID  uuid.UUID           `gorm:"type:uuid;not null;index:idx_items_order_service"`
	Name       string              `gorm:"not null"`
	Price      decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Remark     string
	OccurredAt time.Time `gorm:"not null;index"`

	Order   *orderrepo.OrderDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
	Service *catalogrepo.ServiceDTO `gorm:"foreignKey:ServiceID;constraint:OnDelete:RESTRICT"`
}

func (ItemDTO) TableName() string {
	return "items"
}

func fromDomain(item *execution.Item) ItemDTO {
	return ItemDTO{
		ID:         item.ID().Bytes(),
		OrderID:    item.OrderID().Bytes(),
		ServiceID:  item.ServiceID().Bytes(),
		Name:       item.Name(),
		Price:      decimal.NewNullDecimal(item.Price().Amount()),
		Remark:     item.Remark(),
		OccurredAt: item.OccurredAt(),
	}
}

func toDomain(dto ItemDTO) (*execution.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	serviceID, err := kernel.UUIDFromBytes(dto.ServiceID[:])
	if err != nil {
		return nil, err
	}

	price := kernel.ZeroMoney()
	if dto.Price.Valid {
		if price, err = kernel.NewMoney(dto.Price.Decimal); err != nil {
			return nil, err
		}
	}

	return execution.RestoreItem(id, orderID, serviceID, dto.Name, price, dto.Remark, dto.OccurredAt)
}
