package order

import (
	"errors"
	"fmt"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem or RestoreItem factory functions.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Modifier is an immutable snapshot of a modifier applied to an order line:
// name, display name and the price adjustment that went into the line total.
// It is copied from the catalog's typed modifier option at checkout and never
// re-resolved afterwards.
type Modifier struct {
	Name            string
	LocalizedName   string
	PriceAdjustment kernel.Money
}

// Item is one line of an Order. It snapshots everything needed to display
// and account for the line at the moment of checkout: the catalog reference,
// the item name as sold, the resolved unit price and the ordered modifier
// list. Items are created atomically with their Order and never mutated
// afterwards; catalog changes do not reach back into existing orders.
type Item struct {
	id                  kernel.UUID
	menuItemID          kernel.UUID
	name                string
	quantity            int
	unitPrice           kernel.Money
	modifiers           []Modifier
	specialInstructions string
	lineTotal           kernel.Money

	isConstructed bool
}

// NewItem creates an order line snapshot.
// The name and resolved prices must already be final; NewItem performs
// structural validation only (pricing belongs to the pricing service).
func NewItem(
	id kernel.UUID,
	menuItemID kernel.UUID,
	name string,
	quantity int,
	unitPrice kernel.Money,
	modifiers []Modifier,
	specialInstructions string,
	lineTotal kernel.Money,
) (Item, error) {
	if err := errors.Join(
		id.Validate(),
		menuItemID.Validate(),
	); err != nil {
		return Item{}, err
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name snapshot")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	for _, m := range modifiers {
		if m.Name == "" {
			return Item{}, errs.NewValueIsRequiredError("modifier name")
		}
	}

	return Item{
		id:                  id,
		menuItemID:          menuItemID,
		name:                name,
		quantity:            quantity,
		unitPrice:           unitPrice,
		modifiers:           modifiers,
		specialInstructions: specialInstructions,
		lineTotal:           lineTotal,
		isConstructed:       true,
	}, nil
}

// RestoreItem reconstructs an order line from persistence without
// re-validating pricing. Structural validation still applies.
func RestoreItem(
	id kernel.UUID,
	menuItemID kernel.UUID,
	name string,
	quantity int,
	unitPrice kernel.Money,
	modifiers []Modifier,
	specialInstructions string,
	lineTotal kernel.Money,
) (Item, error) {
	return NewItem(id, menuItemID, name, quantity, unitPrice, modifiers, specialInstructions, lineTotal)
}

// Validate ensures the Item was created through a factory function.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (i Item) ID() kernel.UUID {
	return i.id
}

// MenuItemID returns the catalog item this line was sold from.
func (i Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Name returns the item name as snapshotted at checkout.
// It stays stable even if the catalog renames the item later.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the resolved per-unit price, overrides and size included.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Modifiers returns the ordered modifier snapshots.
func (i Item) Modifiers() []Modifier {
	out := make([]Modifier, len(i.modifiers))
	copy(out, i.modifiers)
	return out
}

// SpecialInstructions returns the customer's free-text instructions.
func (i Item) SpecialInstructions() string {
	return i.specialInstructions
}

// LineTotal returns the line total computed at checkout.
func (i Item) LineTotal() kernel.Money {
	return i.lineTotal
}
