package commands_test

import (
	"errors"
	"testing"
	"time"

	"orderhub/internal/core/application/usecases/commands"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPurgeOrdersCommandHandler_Handle_PurgesEachOrderInOwnTransaction(t *testing.T) {
	ctx := t.Context()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	actor := kernel.NewUUID()
	cmd, err := commands.NewPurgeOrdersCommand(day, &actor)
	require.NoError(t, err)

	first := restoredOrder(t, order.Completed)
	second := restoredOrder(t, order.CustomerCancelled)
	ids := []kernel.UUID{first.ID(), second.ID()}

	idsRepo := new(MockOrderRepository)
	idsUoW := new(MockOrderUoW)
	mock.InOrder(
		idsUoW.On("Begin", ctx).Return(nil).Once(),
		idsUoW.On("OrderRepository").Return(idsRepo).Once(),
		idsRepo.On("GetIDsCreatedOn", mock.Anything, day).Return(ids, nil).Once(),
		idsUoW.On("Commit", ctx).Return(nil).Once(),
		idsUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	deleteUoW := func(o *order.Order) (*MockOrderUoW, *MockOrderRepository, *MockAuditRepository) {
		repo := new(MockOrderRepository)
		auditRepo := new(MockAuditRepository)
		uow := new(MockOrderUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
			uow.On("AuditRepository").Return(auditRepo).Once(),
			auditRepo.On("Append", mock.Anything, mock.AnythingOfType("audit.Entry")).Return(nil).Once(),
			repo.On("Delete", mock.Anything, o.ID()).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		return uow, repo, auditRepo
	}
	firstUoW, firstRepo, firstAudit := deleteUoW(first)
	secondUoW, secondRepo, secondAudit := deleteUoW(second)

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("ports.Event")).Twice()

	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(idsUoW).Once(),
		factory.On("Create").Return(firstUoW).Once(),
		factory.On("Create").Return(secondUoW).Once(),
	)

	h := commands.NewPurgeOrdersCommandHandler(factory, publisher)
	purged, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 2, purged)

	for _, m := range []interface{ AssertExpectations(mock.TestingT) bool }{
		idsRepo, idsUoW, firstRepo, firstUoW, firstAudit, secondRepo, secondUoW, secondAudit, factory, publisher,
	} {
		m.AssertExpectations(t)
	}
}

func TestPurgeOrdersCommandHandler_Handle_SkipsAlreadyDeletedOrders(t *testing.T) {
	// A resumed run sees ids whose orders a previous run already removed;
	// those are counted as done, not errors.
	ctx := t.Context()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	cmd, err := commands.NewPurgeOrdersCommand(day, nil)
	require.NoError(t, err)

	gone := kernel.NewUUID()

	idsRepo := new(MockOrderRepository)
	idsUoW := new(MockOrderUoW)
	mock.InOrder(
		idsUoW.On("Begin", ctx).Return(nil).Once(),
		idsUoW.On("OrderRepository").Return(idsRepo).Once(),
		idsRepo.On("GetIDsCreatedOn", mock.Anything, day).Return([]kernel.UUID{gone}, nil).Once(),
		idsUoW.On("Commit", ctx).Return(nil).Once(),
		idsUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	delRepo := new(MockOrderRepository)
	delUoW := new(MockOrderUoW)
	mock.InOrder(
		delUoW.On("Begin", ctx).Return(nil).Once(),
		delUoW.On("OrderRepository").Return(delRepo).Once(),
		delRepo.On("Get", mock.Anything, gone).
			Return(nil, errs.NewObjectNotFoundError("order", gone.String())).Once(),
		delUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher := new(MockEventPublisher)

	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(idsUoW).Once(),
		factory.On("Create").Return(delUoW).Once(),
	)

	h := commands.NewPurgeOrdersCommandHandler(factory, publisher)
	purged, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 0, purged)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	delRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPurgeOrdersCommandHandler_Handle_StopsOnDeleteError(t *testing.T) {
	ctx := t.Context()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	cmd, err := commands.NewPurgeOrdersCommand(day, nil)
	require.NoError(t, err)

	aggregate := restoredOrder(t, order.Completed)

	idsRepo := new(MockOrderRepository)
	idsUoW := new(MockOrderUoW)
	mock.InOrder(
		idsUoW.On("Begin", ctx).Return(nil).Once(),
		idsUoW.On("OrderRepository").Return(idsRepo).Once(),
		idsRepo.On("GetIDsCreatedOn", mock.Anything, day).Return([]kernel.UUID{aggregate.ID()}, nil).Once(),
		idsUoW.On("Commit", ctx).Return(nil).Once(),
		idsUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	delRepo := new(MockOrderRepository)
	delAudit := new(MockAuditRepository)
	delUoW := new(MockOrderUoW)
	mock.InOrder(
		delUoW.On("Begin", ctx).Return(nil).Once(),
		delUoW.On("OrderRepository").Return(delRepo).Once(),
		delRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		delUoW.On("AuditRepository").Return(delAudit).Once(),
		delAudit.On("Append", mock.Anything, mock.AnythingOfType("audit.Entry")).Return(nil).Once(),
		delRepo.On("Delete", mock.Anything, aggregate.ID()).Return(errors.New("delete error")).Once(),
		delUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher := new(MockEventPublisher)

	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(idsUoW).Once(),
		factory.On("Create").Return(delUoW).Once(),
	)

	h := commands.NewPurgeOrdersCommandHandler(factory, publisher)
	purged, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.Equal(t, 0, purged)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
