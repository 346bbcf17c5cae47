package commands

import (
	"context"
	"time"

	"orderhub/internal/core/domain/model/audit"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/ports"
)

// PerformOrderActionCommandHandler applies an operator-requested status
// change. Regular actions go through the state machine; the admin override
// bypasses adjacency but still respects terminal protection, is flagged on
// the order as an operator edit, and produces its own audit action so the
// trail shows who skipped the workflow and when.
type PerformOrderActionCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewPerformOrderActionCommandHandler creates a handler for operator actions.
func NewPerformOrderActionCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) PerformOrderActionCommandHandler {
	return PerformOrderActionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle applies the action and returns the updated aggregate.
func (h *PerformOrderActionCommandHandler) Handle(ctx context.Context, cmd PerformOrderActionCommand) (*order.Order, error) {
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

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	observed := aggregate.Status()
	oldSnapshot := orderSnapshot(aggregate)

	action := audit.ActionStatusTransition
	if cmd.AdminOverride() {
		action = audit.ActionStatusOverride
		err = aggregate.OverrideStatus(cmd.Target(), cmd.Note(), now)
	} else {
		err = aggregate.Transition(cmd.Target(), cmd.Note(), now)
	}
	if err != nil {
		return nil, err
	}

	if err = repo.UpdateStatus(ctx, aggregate, observed); err != nil {
		return nil, err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		"orders",
		aggregate.ID(),
		action,
		oldSnapshot,
		orderSnapshot(aggregate),
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

	h.publisher.Publish(ctx, newOrderEvent(aggregate, ports.ActionUpdate))
	return aggregate, nil
}
