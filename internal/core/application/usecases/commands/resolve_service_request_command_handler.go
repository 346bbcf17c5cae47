package commands

import (
	"context"
	"time"

	"orderhub/internal/core/domain/model/audit"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/servicerequest"
	"orderhub/internal/core/ports"
)

// ResolveServiceRequestCommandHandler marks a service request handled and
// clears it from the staff queue.
type ResolveServiceRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	publisher  ports.EventPublisher
}

// NewResolveServiceRequestCommandHandler creates a handler for resolving
// service requests.
func NewResolveServiceRequestCommandHandler(uowFactory RequestUoWFactory, publisher ports.EventPublisher) ResolveServiceRequestCommandHandler {
	return ResolveServiceRequestCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle resolves the request. Resolving an already resolved request fails
// with servicerequest.ErrAlreadyResolved.
func (h *ResolveServiceRequestCommandHandler) Handle(ctx context.Context, cmd ResolveServiceRequestCommand) (*servicerequest.ServiceRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ServiceRequestRepository()
	aggregate, err := repo.Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}

	oldSnapshot := requestSnapshot(aggregate)
	if err = aggregate.Resolve(now); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		"service_requests",
		aggregate.ID(),
		audit.ActionResolve,
		oldSnapshot,
		requestSnapshot(aggregate),
		cmd.Actor(),
		now,
	)
	if err != nil {
		return nil, err
	}
	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, newRequestEvent(aggregate, ports.ActionUpdate))
	return aggregate, nil
}
