package commands

import (
	"context"
)

// CleanupServiceRequestsCommandHandler deletes resolved service requests
// past their retention window. Runs from the scheduled cleanup job.
type CleanupServiceRequestsCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewCleanupServiceRequestsCommandHandler creates a handler for the
// retention cleanup.
func NewCleanupServiceRequestsCommandHandler(uowFactory RequestUoWFactory) CleanupServiceRequestsCommandHandler {
	return CleanupServiceRequestsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle deletes resolved requests older than the cutoff and returns how
// many were removed. Plain housekeeping: no audit entry and no event, the
// requests being removed were already resolved and announced.
func (h *CleanupServiceRequestsCommandHandler) Handle(ctx context.Context, cmd CleanupServiceRequestsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.ServiceRequestRepository().DeleteResolvedBefore(ctx, cmd.Cutoff())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return deleted, nil
}
