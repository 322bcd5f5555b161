package orderrepo

import (
	"time"

	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Info            string          `gorm:"not null"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DiscountedPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PurchasedAt     time.Time       `gorm:"not null;index"`
	Status          string          `gorm:"type:varchar(16);not null;index"`
	Remark          string
	Entitlements    []EntitlementDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// EntitlementDTO is keyed by (order_id, service_id), which enforces one
// entitlement per service on an order.
type EntitlementDTO struct {
	OrderID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PurchasedQuantity int       `gorm:"not null;check:purchased_quantity >= 1"`
	CompletedQuantity int       `gorm:"not null;default:0;check:completed_quantity >= 0"`
	Status            string    `gorm:"type:varchar(16);not null"`

	Service *catalogrepo.ServiceDTO `gorm:"foreignKey:ServiceID;constraint:OnDelete:RESTRICT"`
}

func (EntitlementDTO) TableName() string {
	return "order_services"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:              aggregate.ID().Bytes(),
		Info:            aggregate.Info(),
		Price:           aggregate.Price().Amount(),
		DiscountedPrice: aggregate.DiscountedPrice().Amount(),
		PurchasedAt:     aggregate.PurchasedAt(),
		Status:          aggregate.Status().String(),
		Remark:          aggregate.Remark(),
	}

	for _, e := range aggregate.Entitlements() {
		dto.Entitlements = append(dto.Entitlements, entitlementFromDomain(dto.ID, e))
	}

	return dto
}

func entitlementFromDomain(orderID uuid.UUID, e *order.Entitlement) EntitlementDTO {
	return EntitlementDTO{
		OrderID:           orderID,
		ServiceID:         e.ServiceID().Bytes(),
		PurchasedQuantity: e.Purchased(),
		CompletedQuantity: e.Completed(),
		Status:            e.Status().String(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	discounted, err := kernel.NewMoney(dto.DiscountedPrice)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	entitlements := make([]*order.Entitlement, 0, len(dto.Entitlements))
	for _, e := range dto.Entitlements {
		serviceID, idErr := kernel.UUIDFromBytes(e.ServiceID[:])
		if idErr != nil {
			return nil, idErr
		}

		// an unreadable status column loads as Unknown and is rewritten by reconciliation
		stored, _ := order.ParseStatus(e.Status)
		entitlement, restoreErr := order.RestoreStoredEntitlement(
			serviceID, e.PurchasedQuantity, e.CompletedQuantity, stored)
		if restoreErr != nil {
			return nil, restoreErr
		}
		entitlements = append(entitlements, entitlement)
	}

	return order.RestoreOrder(id, dto.Info, price, discounted, dto.PurchasedAt, status, dto.Remark, entitlements)
}
