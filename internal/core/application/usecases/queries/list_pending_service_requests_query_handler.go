package queries

import (
	"context"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/servicerequest"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListPendingServiceRequestsQueryHandler reads the pending queue straight
// from the service_requests table.
type ListPendingServiceRequestsQueryHandler struct {
	db *gorm.DB
}

// NewListPendingServiceRequestsQueryHandler creates a handler for pending
// service request queries.
func NewListPendingServiceRequestsQueryHandler(db *gorm.DB) ListPendingServiceRequestsQueryHandler {
	return ListPendingServiceRequestsQueryHandler{db: db}
}

// Handle returns all pending requests, oldest first.
func (h ListPendingServiceRequestsQueryHandler) Handle(
	ctx context.Context,
	query ListPendingServiceRequestsQuery,
) ([]PendingServiceRequestResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			table_number,
			request_type,
			created_at
		FROM service_requests
		WHERE status = ?
		ORDER BY created_at
	`, string(servicerequest.Pending)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]PendingServiceRequestResponse, 0)
	for rows.Next() {
		var (
			id          uuid.UUID
			tableNumber int
			requestType string
			createdAt   time.Time
		)

		if err = rows.Scan(&id, &tableNumber, &requestType, &createdAt); err != nil {
			return nil, err
		}

		requestID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		requests = append(requests, PendingServiceRequestResponse{
			ID:          requestID,
			TableNumber: tableNumber,
			Type:        servicerequest.Type(requestType),
			CreatedAt:   createdAt,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
