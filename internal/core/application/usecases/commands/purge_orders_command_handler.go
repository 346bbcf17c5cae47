package commands

import (
	"context"
	"errors"
	"time"

	"orderhub/internal/core/domain/model/audit"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/ports"
	"orderhub/internal/pkg/errs"
)

// PurgeOrdersCommandHandler bulk-removes every order created on one calendar
// day. The id set is resolved up front, then each order is deleted in its own
// transaction: the audit delete entry and the row removal commit together,
// and a crash partway leaves fully deleted and fully intact orders only. A
// re-run resolves the remaining ids and picks up where the previous run
// stopped; ids already gone are skipped.
type PurgeOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewPurgeOrdersCommandHandler creates a handler for bulk order purges.
func NewPurgeOrdersCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) PurgeOrdersCommandHandler {
	return PurgeOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle purges the day's orders and returns how many were removed.
func (h *PurgeOrdersCommandHandler) Handle(ctx context.Context, cmd PurgeOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.resolveIDs(ctx, cmd.Day())
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, id := range ids {
		if err = ctx.Err(); err != nil {
			return purged, err
		}
		deleted, err := h.purgeOne(ctx, id, cmd.Actor())
		if err != nil {
			return purged, err
		}
		if deleted {
			purged++
		}
	}
	return purged, nil
}

func (h *PurgeOrdersCommandHandler) resolveIDs(ctx context.Context, day time.Time) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ids, err := uow.OrderRepository().GetIDsCreatedOn(ctx, day)
	if err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return ids, nil
}

// purgeOne deletes a single order in its own transaction. Returns false when
// the order is already gone, which a resumed run treats as done.
func (h *PurgeOrdersCommandHandler) purgeOne(ctx context.Context, id kernel.UUID, actor *kernel.UUID) (bool, error) {
	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		"orders",
		aggregate.ID(),
		audit.ActionDelete,
		orderSnapshot(aggregate),
		nil,
		actor,
		now,
	)
	if err != nil {
		return false, err
	}
	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return false, err
	}

	if err = repo.Delete(ctx, id); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	h.publisher.Publish(ctx, newOrderEvent(aggregate, ports.ActionDelete))
	return true, nil
}
