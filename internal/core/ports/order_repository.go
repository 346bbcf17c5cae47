package ports

import (
	"context"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Reads used by consumer views (dashboard lists, table tracking) live in the
// query layer; the repository only covers what commands need.
type OrderRepository interface {
	// Add persists a new order together with its item snapshots in one
	// atomic write and assigns the monotonically increasing order number
	// back onto the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its items by unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus persists a status transition with a compare-and-swap on
	// observedStatus: the write succeeds only if the stored status still
	// equals the status the caller read before transitioning. A lost race
	// returns order.ErrConflict; callers must re-fetch and retry.
	UpdateStatus(ctx context.Context, aggregate *order.Order, observedStatus order.Status) error

	// GetIDsCreatedOn returns the ids of all orders created on the given
	// calendar day. Used by bulk purge to build a resumable id set.
	GetIDsCreatedOn(ctx context.Context, day time.Time) ([]kernel.UUID, error)

	// Delete removes one order and its items, items first. The audit trail
	// is untouched: entries describing the order survive its deletion.
	Delete(ctx context.Context, id kernel.UUID) error
}
