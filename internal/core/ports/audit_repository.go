package ports

import (
	"context"

	"orderhub/internal/core/domain/model/audit"
)

// AuditRepository is the append-only contract for the audit trail.
// There is deliberately no update or delete method: entries are immutable and
// survive the deletion of the records they describe.
type AuditRepository interface {
	// Append writes one audit entry.
	Append(ctx context.Context, entry audit.Entry) error
}
