// Package catalog provides an in-memory MenuCatalog fed at startup. The menu
// itself is owned by an external system; this adapter holds the snapshot the
// order service works against and is safe for concurrent reads.
package catalog

import (
	"context"
	"sync"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/menu"
	"orderhub/internal/pkg/errs"
)

type overrideKey struct {
	location kernel.UUID
	item     kernel.UUID
}

// StaticCatalog is a MenuCatalog backed by maps.
type StaticCatalog struct {
	mu        sync.RWMutex
	items     map[kernel.UUID]menu.MenuItem
	modifiers map[kernel.UUID][]menu.ModifierOption
	overrides map[overrideKey]menu.LocationOverride
}

// NewStaticCatalog creates an empty catalog.
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{
		items:     make(map[kernel.UUID]menu.MenuItem),
		modifiers: make(map[kernel.UUID][]menu.ModifierOption),
		overrides: make(map[overrideKey]menu.LocationOverride),
	}
}

// PutItem adds or replaces a catalog item and its modifier options.
func (c *StaticCatalog) PutItem(item menu.MenuItem, modifiers []menu.ModifierOption) error {
	if err := item.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[item.ID()] = item
	c.modifiers[item.ID()] = modifiers
	return nil
}

// PutOverride adds or replaces a per-location record.
func (c *StaticCatalog) PutOverride(override menu.LocationOverride) error {
	if err := override.LocationID.Validate(); err != nil {
		return err
	}
	if err := override.ItemID.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.overrides[overrideKey{location: override.LocationID, item: override.ItemID}] = override
	return nil
}

// ItemByID returns one catalog item.
func (c *StaticCatalog) ItemByID(_ context.Context, itemID kernel.UUID) (menu.MenuItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[itemID]
	if !ok {
		return menu.MenuItem{}, errs.NewObjectNotFoundError("menu item", nil)
	}
	return item, nil
}

// OverrideFor returns the per-location record, or nil when none exists.
func (c *StaticCatalog) OverrideFor(_ context.Context, locationID kernel.UUID, itemID kernel.UUID) (*menu.LocationOverride, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	override, ok := c.overrides[overrideKey{location: locationID, item: itemID}]
	if !ok {
		return nil, nil
	}
	return &override, nil
}

// ItemModifiers returns the modifier options offered for an item.
func (c *StaticCatalog) ItemModifiers(_ context.Context, itemID kernel.UUID) ([]menu.ModifierOption, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.items[itemID]; !ok {
		return nil, errs.NewObjectNotFoundError("menu item", nil)
	}
	return c.modifiers[itemID], nil
}
