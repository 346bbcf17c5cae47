package services_test

import (
	"testing"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/menu"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func defaultPricing(t *testing.T) services.PricingService {
	t.Helper()
	p, err := services.NewPricingService(services.DefaultTaxRate)
	require.NoError(t, err)
	return p
}

func catalogItem(t *testing.T, price string, available bool, sizes ...menu.SizeVariant) menu.MenuItem {
	t.Helper()
	item, err := menu.NewMenuItem(kernel.NewUUID(), "Burger", mustMoney(t, price), available, nil, sizes)
	require.NoError(t, err)
	return item
}

func TestNewPricingService(t *testing.T) {
	t.Run("should reject negative tax rate", func(t *testing.T) {
		_, err := services.NewPricingService(decimal.RequireFromString("-0.08"))
		require.Error(t, err)
	})

	t.Run("should accept zero tax rate", func(t *testing.T) {
		p, err := services.NewPricingService(decimal.Zero)
		require.NoError(t, err)

		totals := p.OrderTotals([]kernel.Money{mustMoney(t, "10.00")})
		assert.True(t, totals.Tax.IsZero())
		assert.True(t, totals.Total.IsEqual(mustMoney(t, "10.00")))
	})
}

func TestPricingService_ResolveUnitPrice(t *testing.T) {
	pricing := defaultPricing(t)

	t.Run("should use base price without override or size", func(t *testing.T) {
		price, err := pricing.ResolveUnitPrice(catalogItem(t, "50.00", true), nil, nil)

		require.NoError(t, err)
		assert.True(t, price.IsEqual(mustMoney(t, "50.00")))
	})

	t.Run("should prefer location price override", func(t *testing.T) {
		override := mustMoney(t, "45.00")
		price, err := pricing.ResolveUnitPrice(
			catalogItem(t, "50.00", true),
			&menu.LocationOverride{IsAvailable: true, PriceOverride: &override},
			nil,
		)

		require.NoError(t, err)
		assert.True(t, price.IsEqual(mustMoney(t, "45.00")))
	})

	t.Run("should add size adjustment on top of the effective price", func(t *testing.T) {
		large := menu.SizeVariant{Name: "large", PriceAdjustment: mustMoney(t, "5.00")}
		override := mustMoney(t, "45.00")

		price, err := pricing.ResolveUnitPrice(
			catalogItem(t, "50.00", true, large),
			&menu.LocationOverride{IsAvailable: true, PriceOverride: &override},
			&large,
		)

		require.NoError(t, err)
		assert.True(t, price.IsEqual(mustMoney(t, "50.00")))
	})

	t.Run("should fail for catalog-unavailable item", func(t *testing.T) {
		_, err := pricing.ResolveUnitPrice(catalogItem(t, "50.00", false), nil, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrItemUnavailable)
	})

	t.Run("should fail when location override disables the item", func(t *testing.T) {
		_, err := pricing.ResolveUnitPrice(
			catalogItem(t, "50.00", true),
			&menu.LocationOverride{IsAvailable: false},
			nil,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrItemUnavailable)
	})

	t.Run("should fail for catalog-unavailable item even when override enables it", func(t *testing.T) {
		lower := mustMoney(t, "9.00")

		_, err := pricing.ResolveUnitPrice(
			catalogItem(t, "50.00", false),
			&menu.LocationOverride{IsAvailable: true, PriceOverride: &lower},
			nil,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrItemUnavailable)
	})

	t.Run("should fail when size adjustment drives price negative", func(t *testing.T) {
		downsize := menu.SizeVariant{Name: "thimble", PriceAdjustment: mustMoney(t, "-60.00")}

		_, err := pricing.ResolveUnitPrice(catalogItem(t, "50.00", true, downsize), nil, &downsize)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidPrice)
	})
}

func TestPricingService_LineTotal(t *testing.T) {
	pricing := defaultPricing(t)

	t.Run("should multiply unit price plus modifiers by quantity", func(t *testing.T) {
		total, err := pricing.LineTotal(
			mustMoney(t, "50.00"),
			[]order.Modifier{{Name: "Extra cheese", PriceAdjustment: mustMoney(t, "5.00")}},
			2,
		)

		require.NoError(t, err)
		assert.True(t, total.IsEqual(mustMoney(t, "110.00")))
	})

	t.Run("should round half-up to cents", func(t *testing.T) {
		total, err := pricing.LineTotal(mustMoney(t, "3.335"), nil, 1)

		require.NoError(t, err)
		assert.Equal(t, "3.34", total.String())
	})

	t.Run("should allow negative modifier adjustments", func(t *testing.T) {
		total, err := pricing.LineTotal(
			mustMoney(t, "10.00"),
			[]order.Modifier{{Name: "No cheese", PriceAdjustment: mustMoney(t, "-1.50")}},
			2,
		)

		require.NoError(t, err)
		assert.True(t, total.IsEqual(mustMoney(t, "17.00")))
	})

	t.Run("should fail when modifiers drive the per-unit price negative", func(t *testing.T) {
		_, err := pricing.LineTotal(
			mustMoney(t, "1.00"),
			[]order.Modifier{{Name: "Impossible discount", PriceAdjustment: mustMoney(t, "-2.00")}},
			1,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidPrice)
	})

	t.Run("should fail on non-positive quantity", func(t *testing.T) {
		_, err := pricing.LineTotal(mustMoney(t, "10.00"), nil, 0)

		require.Error(t, err)
	})
}

func TestPricingService_OrderTotals(t *testing.T) {
	pricing := defaultPricing(t)

	t.Run("should compute subtotal tax and total", func(t *testing.T) {
		// one line: (50.00 + 5.00) * 2 = 110.00 at 8% tax
		totals := pricing.OrderTotals([]kernel.Money{mustMoney(t, "110.00")})

		assert.Equal(t, "110.00", totals.Subtotal.String())
		assert.Equal(t, "8.80", totals.Tax.String())
		assert.Equal(t, "118.80", totals.Total.String())
	})

	t.Run("should sum lines exactly before taxing", func(t *testing.T) {
		totals := pricing.OrderTotals([]kernel.Money{
			mustMoney(t, "0.10"),
			mustMoney(t, "0.20"),
			mustMoney(t, "0.30"),
		})

		assert.Equal(t, "0.60", totals.Subtotal.String())
		assert.Equal(t, "0.05", totals.Tax.String())
		assert.Equal(t, "0.65", totals.Total.String())
	})

	t.Run("should be deterministic for identical input", func(t *testing.T) {
		lines := []kernel.Money{mustMoney(t, "19.99"), mustMoney(t, "7.77")}

		first := pricing.OrderTotals(lines)
		second := pricing.OrderTotals(lines)

		assert.Equal(t, first.Total.String(), second.Total.String())
		assert.Equal(t, first.Tax.String(), second.Tax.String())
	})

	t.Run("should produce zero totals for no lines", func(t *testing.T) {
		totals := pricing.OrderTotals(nil)

		assert.True(t, totals.Subtotal.IsZero())
		assert.True(t, totals.Total.IsZero())
	})
}
