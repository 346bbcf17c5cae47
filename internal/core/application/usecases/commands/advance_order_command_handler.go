package commands

import (
	"context"
	"time"

	"orderhub/internal/core/domain/model/audit"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/ports"
)

// AdvanceOrderCommandHandler moves an order to its next happy-path status.
//
// The status write is a compare-and-swap on the status observed during this
// handler's own read. When two staff members advance the same order at once,
// exactly one commit wins; the loser receives order.ErrConflict and must
// re-fetch and retry, so the order advances exactly once per observed state.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewAdvanceOrderCommandHandler creates a handler for kitchen advancement.
func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle advances the order one step and returns the updated aggregate.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) (*order.Order, error) {
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

	target, err := aggregate.NextStatus()
	if err != nil {
		return nil, err
	}
	if err = aggregate.Transition(target, "", now); err != nil {
		return nil, err
	}

	if err = repo.UpdateStatus(ctx, aggregate, observed); err != nil {
		return nil, err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		"orders",
		aggregate.ID(),
		audit.ActionStatusTransition,
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
