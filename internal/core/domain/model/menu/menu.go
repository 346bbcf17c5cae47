// Package menu holds read-only catalog snapshot types. The catalog itself is
// owned by an external system; orders consume item prices, size variants,
// dietary flags and per-location overrides at checkout time and snapshot what
// they need. Nothing in this package is ever written back.
package menu

import (
	"errors"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"
)

var (
	// ErrMenuItemIsNotConstructed is returned when a MenuItem was not created
	// through NewMenuItem.
	ErrMenuItemIsNotConstructed = errors.New("MenuItem must be created via NewMenuItem")

	// ErrSizeVariantNotFound is returned when a requested size does not exist
	// on the item.
	ErrSizeVariantNotFound = errors.New("size variant not found on menu item")
)

// SizeVariant is an optional size choice on a menu item, carrying a price
// adjustment relative to the item's base price.
type SizeVariant struct {
	Name            string
	PriceAdjustment kernel.Money
}

// ModifierOption is a typed modifier choice offered by the catalog.
// It is validated at checkout and snapshotted into the order line; free-form
// modifier payloads are not accepted.
type ModifierOption struct {
	Name            string
	LocalizedName   string
	PriceAdjustment kernel.Money
}

// Validate rejects modifier options without a name. The localized name is
// display-only and may be empty.
func (m ModifierOption) Validate() error {
	if m.Name == "" {
		return errs.NewValueIsRequiredError("modifier name")
	}
	return nil
}

// MenuItem is the catalog view of a sellable item: base price, availability,
// dietary flags and optional size variants.
//
// MenuItem is read-only here. Checkout re-reads it at commit time so that a
// browse-time snapshot can never place an order for an item that has since
// become unavailable or changed price.
type MenuItem struct {
	id           kernel.UUID
	name         string
	basePrice    kernel.Money
	isAvailable  bool
	dietaryFlags []string
	sizes        []SizeVariant

	guard kernel.ConstructorGuard
}

// NewMenuItem creates a catalog item snapshot.
// The id must be valid and the name non-empty; the base price may be zero
// (e.g. a complimentary item) but not negative.
func NewMenuItem(
	id kernel.UUID,
	name string,
	basePrice kernel.Money,
	isAvailable bool,
	dietaryFlags []string,
	sizes []SizeVariant,
) (MenuItem, error) {
	if err := id.Validate(); err != nil {
		return MenuItem{}, err
	}
	if name == "" {
		return MenuItem{}, errs.NewValueIsRequiredError("menu item name")
	}
	if basePrice.IsNegative() {
		return MenuItem{}, errs.NewValueIsInvalidError("menu item base price")
	}

	return MenuItem{
		id:           id,
		name:         name,
		basePrice:    basePrice,
		isAvailable:  isAvailable,
		dietaryFlags: dietaryFlags,
		sizes:        sizes,
		guard:        kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the item was created via NewMenuItem.
func (i MenuItem) Validate() error {
	return i.guard.Validate(ErrMenuItemIsNotConstructed)
}

// ID returns the catalog identifier of the item.
func (i MenuItem) ID() kernel.UUID {
	return i.id
}

// Name returns the catalog name of the item.
func (i MenuItem) Name() string {
	return i.name
}

// BasePrice returns the item's base price before overrides and adjustments.
func (i MenuItem) BasePrice() kernel.Money {
	return i.basePrice
}

// IsAvailable reports the item's default availability.
func (i MenuItem) IsAvailable() bool {
	return i.isAvailable
}

// DietaryFlags returns the item's dietary flags (e.g. "vegan", "gluten_free").
func (i MenuItem) DietaryFlags() []string {
	return i.dietaryFlags
}

// Sizes returns the item's size variants, possibly empty.
func (i MenuItem) Sizes() []SizeVariant {
	return i.sizes
}

// SizeByName looks up a size variant by name.
// Returns ErrSizeVariantNotFound when the item does not offer that size.
func (i MenuItem) SizeByName(name string) (SizeVariant, error) {
	for _, s := range i.sizes {
		if s.Name == name {
			return s, nil
		}
	}
	return SizeVariant{}, ErrSizeVariantNotFound
}

// LocationOverride is the per-location record for one catalog item.
// Invariant: the absence of an override record never means "unavailable";
// it means the item inherits the catalog defaults. Callers therefore pass a
// nil *LocationOverride when no record exists.
type LocationOverride struct {
	LocationID    kernel.UUID
	ItemID        kernel.UUID
	IsAvailable   bool
	PriceOverride *kernel.Money
}

// AvailableAt resolves effective availability of an item at a location.
// An override can only restrict: an item the catalog flags unavailable stays
// unavailable everywhere, regardless of per-location records. A nil override
// inherits the item's own availability flag.
func AvailableAt(item MenuItem, override *LocationOverride) bool {
	if !item.IsAvailable() {
		return false
	}
	return override == nil || override.IsAvailable
}
