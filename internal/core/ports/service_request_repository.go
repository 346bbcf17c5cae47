package ports

import (
	"context"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/servicerequest"
)

// ServiceRequestRepository defines the persistence contract for service
// requests. The pending-uniqueness invariant (at most one pending request per
// table and type) is upheld by callers through GetPending before Add.
type ServiceRequestRepository interface {
	// Add persists a new service request.
	Add(ctx context.Context, aggregate *servicerequest.ServiceRequest) error

	// Get retrieves a service request by unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*servicerequest.ServiceRequest, error)

	// GetPending retrieves the pending request for a (table, type) pair.
	// Returns an errs.ObjectNotFoundError when no pending request exists;
	// resolved requests are never returned.
	GetPending(ctx context.Context, tableNumber int, requestType servicerequest.Type) (*servicerequest.ServiceRequest, error)

	// Update persists a state change (resolution).
	Update(ctx context.Context, aggregate *servicerequest.ServiceRequest) error

	// DeleteResolvedBefore removes resolved requests older than cutoff and
	// returns how many were removed. Pending requests are never touched.
	DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
