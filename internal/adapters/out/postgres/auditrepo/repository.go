package auditrepo

import (
	"context"

	"orderhub/internal/core/domain/model/audit"
	"orderhub/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormAuditRepository implements ports.AuditRepository using GORM.
// It exposes Append only; the table has no update or delete path in code.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append writes one audit entry.
func (r *GormAuditRepository) Append(ctx context.Context, entry audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByRecord returns all entries for one record, oldest first. Used by
// read-side trail views and by tests asserting the trail survives deletion.
func (r *GormAuditRepository) GetByRecord(ctx context.Context, tableName string, recordID kernel.UUID) ([]audit.Entry, error) {
	var dtos []AuditEntryDTO
	err := r.db.WithContext(ctx).
		Where("table_name = ? AND record_id = ?", tableName, recordID.Bytes()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
