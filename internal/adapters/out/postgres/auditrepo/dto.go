// Package auditrepo persists the append-only audit trail.
package auditrepo

import (
	"time"

	"orderhub/internal/core/domain/model/audit"
	"orderhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AuditEntryDTO is the database row for one audit entry. The record_id column
// carries no foreign key on purpose: entries must survive the deletion of the
// records they describe.
type AuditEntryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecordTable string  `gorm:"column:table_name;type:varchar(64);index:idx_audit_record"`
	RecordID  uuid.UUID `gorm:"type:uuid;index:idx_audit_record"`
	Action    string    `gorm:"type:varchar(32);index"`
	OldData   []byte    `gorm:"type:jsonb"`
	NewData   []byte    `gorm:"type:jsonb"`
	ActorID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time  `gorm:"index"`
}

// TableName specifies the database table name for audit rows.
func (AuditEntryDTO) TableName() string {
	return "audit_entries"
}

// fromDomain converts an audit entry to its database row.
func fromDomain(entry audit.Entry) AuditEntryDTO {
	var actorID *uuid.UUID
	if actor := entry.Actor(); actor != nil {
		raw := actor.Bytes()
		actorID = &raw
	}

	return AuditEntryDTO{
		ID:        entry.ID().Bytes(),
		RecordTable: entry.TableName(),
		RecordID:  entry.RecordID().Bytes(),
		Action:    entry.Action(),
		OldData:   entry.OldData(),
		NewData:   entry.NewData(),
		ActorID:   actorID,
		CreatedAt: entry.CreatedAt(),
	}
}

// toDomain converts a database row back into an audit entry.
func toDomain(dto AuditEntryDTO) (audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return audit.Entry{}, err
	}
	recordID, err := kernel.UUIDFromBytes(dto.RecordID[:])
	if err != nil {
		return audit.Entry{}, err
	}

	var actor *kernel.UUID
	if dto.ActorID != nil {
		a, actorErr := kernel.UUIDFromBytes((*dto.ActorID)[:])
		if actorErr != nil {
			return audit.Entry{}, actorErr
		}
		actor = &a
	}

	return audit.NewEntry(id, dto.RecordTable, recordID, dto.Action, dto.OldData, dto.NewData, actor, dto.CreatedAt)
}
