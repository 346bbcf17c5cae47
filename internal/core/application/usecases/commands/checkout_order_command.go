package commands

import (
	"errors"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/menu"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"
	"orderhub/internal/pkg/guard"
)

var (
	ErrCheckoutOrderCommandIsNotConstructed = errors.New(
		"CheckoutOrderCommand must be created via NewCheckoutOrderCommand constructor",
	)
	ErrCartIsEmpty = errors.New("checkout requires at least one line")
)

// CheckoutLine is one cart line presented at checkout: the catalog item as
// re-read at commit time, the location override record if one exists (nil
// means inherit), the chosen size and modifiers, and the quantity.
type CheckoutLine struct {
	Item                menu.MenuItem
	Override            *menu.LocationOverride
	SizeName            string
	Modifiers           []menu.ModifierOption
	Quantity            int
	SpecialInstructions string
}

// CheckoutOrderCommand represents a request to create an order from a cart.
// Pricing and availability are resolved by the handler at commit time, never
// trusted from an earlier browse-time snapshot.
type CheckoutOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	orderType     order.OrderType
	paymentMethod order.PaymentMethod
	tableNumber   *int
	locationID    *kernel.UUID
	customer      order.Customer
	lines         []CheckoutLine

	guard guard.ConstructorGuard
}

// NewCheckoutOrderCommand creates a checkout command.
// Validates identifiers, enum values, the table number when present, cart
// non-emptiness, per-line quantities and the typed modifier options.
func NewCheckoutOrderCommand(
	orderID kernel.UUID,
	orderType order.OrderType,
	paymentMethod order.PaymentMethod,
	tableNumber *int,
	locationID *kernel.UUID,
	customer order.Customer,
	lines []CheckoutLine,
) (CheckoutOrderCommand, error) {
	cmd := CheckoutOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderType(orderType),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setTableNumber(tableNumber),
		cmd.setLocationID(locationID),
		cmd.setLines(lines),
	); err != nil {
		return CheckoutOrderCommand{}, err
	}

	cmd.customer = customer
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutOrderCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CheckoutOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderType returns the fulfillment type.
func (c CheckoutOrderCommand) OrderType() order.OrderType {
	return c.orderType
}

// PaymentMethod returns the declared payment method.
func (c CheckoutOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// TableNumber returns the table for dine-in orders, or nil.
func (c CheckoutOrderCommand) TableNumber() *int {
	return c.tableNumber
}

// LocationID returns the restaurant site, or nil.
func (c CheckoutOrderCommand) LocationID() *kernel.UUID {
	return c.locationID
}

// Customer returns the customer identity fields.
func (c CheckoutOrderCommand) Customer() order.Customer {
	return c.customer
}

// Lines returns the cart lines.
func (c CheckoutOrderCommand) Lines() []CheckoutLine {
	return c.lines
}

func (c *CheckoutOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CheckoutOrderCommand) setOrderType(orderType order.OrderType) error {
	parsed, err := order.ParseOrderType(string(orderType))
	if err != nil {
		return err
	}
	c.orderType = parsed
	return nil
}

func (c *CheckoutOrderCommand) setPaymentMethod(paymentMethod order.PaymentMethod) error {
	parsed, err := order.ParsePaymentMethod(string(paymentMethod))
	if err != nil {
		return err
	}
	c.paymentMethod = parsed
	return nil
}

func (c *CheckoutOrderCommand) setTableNumber(tableNumber *int) error {
	if tableNumber != nil && *tableNumber <= 0 {
		return errs.NewValueIsInvalidError("table number")
	}
	c.tableNumber = tableNumber
	return nil
}

func (c *CheckoutOrderCommand) setLocationID(locationID *kernel.UUID) error {
	if locationID != nil {
		if err := locationID.Validate(); err != nil {
			return err
		}
	}
	c.locationID = locationID
	return nil
}

func (c *CheckoutOrderCommand) setLines(lines []CheckoutLine) error {
	if len(lines) == 0 {
		return ErrCartIsEmpty
	}
	for _, line := range lines {
		if err := line.Item.Validate(); err != nil {
			return err
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidError("line quantity")
		}
		for _, m := range line.Modifiers {
			if err := m.Validate(); err != nil {
				return err
			}
		}
	}
	c.lines = lines
	return nil
}
