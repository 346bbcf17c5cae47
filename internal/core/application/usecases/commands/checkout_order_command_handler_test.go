package commands_test

import (
	"errors"
	"testing"

	"orderhub/internal/core/application/usecases/commands"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/menu"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pricingService(t *testing.T) services.PricingService {
	t.Helper()
	p, err := services.NewPricingService(services.DefaultTaxRate)
	require.NoError(t, err)
	return p
}

func checkoutCommand(t *testing.T, lines []commands.CheckoutLine) commands.CheckoutOrderCommand {
	t.Helper()
	table := 7
	cmd, err := commands.NewCheckoutOrderCommand(
		kernel.NewUUID(),
		order.DineIn,
		order.PayCard,
		&table,
		nil,
		order.Customer{Name: "Ada"},
		lines,
	)
	require.NoError(t, err)
	return cmd
}

func burgerLine(t *testing.T, available bool) commands.CheckoutLine {
	t.Helper()
	item, err := menu.NewMenuItem(kernel.NewUUID(), "Burger", money(t, "50.00"), available, nil, nil)
	require.NoError(t, err)
	return commands.CheckoutLine{
		Item: item,
		Modifiers: []menu.ModifierOption{
			{Name: "Extra cheese", PriceAdjustment: money(t, "5.00")},
		},
		Quantity: 2,
	}
}

func TestCheckoutOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := checkoutCommand(t, []commands.CheckoutLine{burgerLine(t, true)})

	repo := new(MockOrderRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockOrderUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", mock.Anything, mock.AnythingOfType("audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", mock.Anything, mock.AnythingOfType("ports.Event")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutOrderCommandHandler(factory, pricingService(t), publisher)
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	// (50.00 + 5.00) * 2 = 110.00, tax 8.80, total 118.80
	totals := created.Totals()
	require.True(t, totals.Subtotal.IsEqual(money(t, "110.00")))
	require.True(t, totals.Tax.IsEqual(money(t, "8.80")))
	require.True(t, totals.Total.IsEqual(money(t, "118.80")))
	require.Equal(t, order.New, created.Status())
	require.NotEmpty(t, created.VerificationCode())

	repo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCheckoutOrderCommandHandler_Handle_UnavailableItemLeavesNothingBehind(t *testing.T) {
	ctx := t.Context()
	cmd := checkoutCommand(t, []commands.CheckoutLine{
		burgerLine(t, true),
		burgerLine(t, false),
	})

	factory := new(MockOrderUoWFactory)
	publisher := new(MockEventPublisher)

	h := commands.NewCheckoutOrderCommandHandler(factory, pricingService(t), publisher)
	created, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, services.ErrItemUnavailable)
	require.Nil(t, created)

	// pricing failed before any transaction was opened
	factory.AssertNotCalled(t, "Create")
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCheckoutOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CheckoutOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	h := commands.NewCheckoutOrderCommandHandler(factory, pricingService(t), new(MockEventPublisher))
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrCheckoutOrderCommandIsNotConstructed)
}

func TestCheckoutOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := checkoutCommand(t, []commands.CheckoutLine{burgerLine(t, true)})

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutOrderCommandHandler(factory, pricingService(t), publisher)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCheckoutOrderCommandHandler_Handle_CommitErrorDoesNotPublish(t *testing.T) {
	ctx := t.Context()
	cmd := checkoutCommand(t, []commands.CheckoutLine{burgerLine(t, true)})

	repo := new(MockOrderRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockOrderUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", mock.Anything, mock.AnythingOfType("audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutOrderCommandHandler(factory, pricingService(t), publisher)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}
