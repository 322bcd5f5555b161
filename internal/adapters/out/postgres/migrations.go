package postgres

import (
	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/itemrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every ledger table. Tables are listed parents first
// so foreign keys resolve.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalogrepo.ServiceDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.EntitlementDTO{},
		&itemrepo.ItemDTO{},
	)
}

// Tables lists the ledger tables, children first.
func Tables() []string {
	return []string{"items", "order_services", "orders", "services"}
}
