package postgres

import (
	"orderhub/internal/adapters/out/postgres/auditrepo"
	"orderhub/internal/adapters/out/postgres/orderrepo"
	"orderhub/internal/adapters/out/postgres/servicerequestrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all persisted aggregates,
// including the partial unique index that enforces at most one pending
// service request per table and type.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&servicerequestrepo.ServiceRequestDTO{},
		&auditrepo.AuditEntryDTO{},
	)
}
