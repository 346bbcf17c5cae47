package queries

import (
	"errors"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/servicerequest"
	"orderhub/internal/pkg/guard"
)

var (
	ErrListPendingServiceRequestsQueryIsNotConstructed = errors.New(
		"ListPendingServiceRequestsQuery must be created via NewListPendingServiceRequestsQuery constructor",
	)
)

// ListPendingServiceRequestsQuery retrieves every unresolved service request
// for the staff dashboard, oldest first so the longest-waiting table is
// handled first.
type ListPendingServiceRequestsQuery struct {
	guard guard.ConstructorGuard
}

// NewListPendingServiceRequestsQuery creates a query for the pending
// service request queue. This is a parameterless query.
func NewListPendingServiceRequestsQuery() ListPendingServiceRequestsQuery {
	return ListPendingServiceRequestsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListPendingServiceRequestsQuery) Validate() error {
	return q.guard.Validate(ErrListPendingServiceRequestsQueryIsNotConstructed)
}

// PendingServiceRequestResponse is one unresolved table request.
type PendingServiceRequestResponse struct {
	ID          kernel.UUID
	TableNumber int
	Type        servicerequest.Type
	CreatedAt   time.Time
}
