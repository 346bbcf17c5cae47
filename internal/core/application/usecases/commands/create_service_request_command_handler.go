package commands

import (
	"context"
	"errors"
	"time"

	"orderhub/internal/core/domain/model/audit"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/servicerequest"
	"orderhub/internal/core/ports"
	"orderhub/internal/pkg/errs"
)

// CreateServiceRequestCommandHandler raises a table's service request.
// Idempotent while a matching request is pending: the existing request is
// returned and nothing is persisted or published, so a customer mashing the
// button produces one staff notification.
type CreateServiceRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateServiceRequestCommandHandler creates a handler for raising
// service requests.
func NewCreateServiceRequestCommandHandler(uowFactory RequestUoWFactory, publisher ports.EventPublisher) CreateServiceRequestCommandHandler {
	return CreateServiceRequestCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns the pending request for the (table, type) pair, creating it
// if none exists.
func (h *CreateServiceRequestCommandHandler) Handle(ctx context.Context, cmd CreateServiceRequestCommand) (*servicerequest.ServiceRequest, error) {
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

	existing, err := repo.GetPending(ctx, cmd.TableNumber(), cmd.Type())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	aggregate, err := servicerequest.NewServiceRequest(kernel.NewUUID(), cmd.TableNumber(), cmd.Type(), now)
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		"service_requests",
		aggregate.ID(),
		audit.ActionCreate,
		nil,
		requestSnapshot(aggregate),
		nil,
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

	h.publisher.Publish(ctx, newRequestEvent(aggregate, ports.ActionInsert))
	return aggregate, nil
}
