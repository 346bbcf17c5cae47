package ports

import (
	"context"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/menu"
)

// MenuCatalog is the read-only view of the external menu system. Checkout
// re-reads it at commit time; nothing here is ever written.
type MenuCatalog interface {
	// ItemByID returns one catalog item.
	// Returns errs.ErrObjectNotFound for an unknown id.
	ItemByID(ctx context.Context, itemID kernel.UUID) (menu.MenuItem, error)

	// OverrideFor returns the per-location record for an item, or nil when no
	// record exists. Absence means "inherit catalog defaults", never
	// "unavailable".
	OverrideFor(ctx context.Context, locationID kernel.UUID, itemID kernel.UUID) (*menu.LocationOverride, error)

	// ItemModifiers returns the modifier options the catalog offers for an
	// item. Checkout accepts only options from this list.
	ItemModifiers(ctx context.Context, itemID kernel.UUID) ([]menu.ModifierOption, error)
}
