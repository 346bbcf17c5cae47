package commands

import (
	"context"
	"time"

	"orderhub/internal/core/domain/model/audit"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/menu"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/domain/services"
	"orderhub/internal/core/ports"
)

// CheckoutOrderCommandHandler creates an order from a cart.
//
// The handler is the all-or-nothing boundary of order creation: it resolves
// every line's availability and price at commit time through the pricing
// service, builds the immutable item snapshots, persists order and items in
// one transaction together with the creation audit entry, and only after the
// commit publishes the insert event. A pricing or availability failure on any
// line leaves no partial order behind.
type CheckoutOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    services.PricingService
	publisher  ports.EventPublisher
}

// NewCheckoutOrderCommandHandler creates a handler for order checkout.
func NewCheckoutOrderCommandHandler(
	uowFactory OrderUoWFactory,
	pricing services.PricingService,
	publisher ports.EventPublisher,
) CheckoutOrderCommandHandler {
	return CheckoutOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		publisher:  publisher,
	}
}

// Handle processes the checkout command and returns the created order.
func (h *CheckoutOrderCommandHandler) Handle(ctx context.Context, cmd CheckoutOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	items, lineTotals, err := h.priceLines(cmd.Lines())
	if err != nil {
		return nil, err
	}
	totals := h.pricing.OrderTotals(lineTotals)

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.OrderType(),
		cmd.PaymentMethod(),
		cmd.TableNumber(),
		cmd.LocationID(),
		cmd.Customer(),
		items,
		totals,
		order.NewVerificationCode(),
		now,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		"orders",
		newOrder.ID(),
		audit.ActionCreate,
		nil,
		orderSnapshot(newOrder),
		nil, // checkout is a customer action, attributed to no actor
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

	h.publisher.Publish(ctx, newOrderEvent(newOrder, ports.ActionInsert))
	return newOrder, nil
}

// priceLines resolves every cart line into an immutable item snapshot and
// its line total. Fails fast on the first unavailable item or invalid price.
func (h *CheckoutOrderCommandHandler) priceLines(lines []CheckoutLine) ([]order.Item, []kernel.Money, error) {
	items := make([]order.Item, 0, len(lines))
	lineTotals := make([]kernel.Money, 0, len(lines))

	for _, line := range lines {
		var size *menu.SizeVariant
		if line.SizeName != "" {
			s, err := line.Item.SizeByName(line.SizeName)
			if err != nil {
				return nil, nil, err
			}
			size = &s
		}

		unitPrice, err := h.pricing.ResolveUnitPrice(line.Item, line.Override, size)
		if err != nil {
			return nil, nil, err
		}

		modifiers := make([]order.Modifier, 0, len(line.Modifiers))
		for _, m := range line.Modifiers {
			modifiers = append(modifiers, order.Modifier{
				Name:            m.Name,
				LocalizedName:   m.LocalizedName,
				PriceAdjustment: m.PriceAdjustment,
			})
		}

		lineTotal, err := h.pricing.LineTotal(unitPrice, modifiers, line.Quantity)
		if err != nil {
			return nil, nil, err
		}

		item, err := order.NewItem(
			kernel.NewUUID(),
			line.Item.ID(),
			line.Item.Name(),
			line.Quantity,
			unitPrice,
			modifiers,
			line.SpecialInstructions,
			lineTotal,
		)
		if err != nil {
			return nil, nil, err
		}

		items = append(items, item)
		lineTotals = append(lineTotals, lineTotal)
	}

	return items, lineTotals, nil
}
