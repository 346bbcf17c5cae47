package services

import (
	"errors"
	"fmt"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/menu"
	"orderhub/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidPrice is returned when price resolution produces a negative
	// amount. No partial order is ever created after this error.
	ErrInvalidPrice = errors.New("resolved price is invalid")

	// ErrItemUnavailable is returned when an item or its location override is
	// flagged unavailable at commit time. Availability is always re-checked at
	// order creation, never trusted from a browse-time snapshot.
	ErrItemUnavailable = errors.New("item is unavailable")
)

// DefaultTaxRate is applied when no rate is configured.
var DefaultTaxRate = decimal.RequireFromString("0.08")

// PricingService resolves effective item prices and computes order totals.
// All arithmetic is fixed-point decimal; results are deterministic and
// reproducible for identical inputs. Rounding is half-up to 2 places and
// happens exactly twice: on each line total and on the tax amount.
//
// Example usage:
//
//	pricing, _ := services.NewPricingService(services.DefaultTaxRate)
//	unit, err := pricing.ResolveUnitPrice(item, override, nil)
//	line, err := pricing.LineTotal(unit, modifiers, 2)
//	totals := pricing.OrderTotals([]kernel.Money{line})
type PricingService struct {
	taxRate decimal.Decimal
}

// NewPricingService creates a pricing service with the given tax rate
// (e.g. 0.08 for 8%). Negative rates are rejected.
func NewPricingService(taxRate decimal.Decimal) (PricingService, error) {
	if taxRate.IsNegative() {
		return PricingService{}, fmt.Errorf("%w: tax rate %s is negative", ErrInvalidPrice, taxRate)
	}
	return PricingService{taxRate: taxRate}, nil
}

// TaxRate returns the configured tax rate.
func (s PricingService) TaxRate() decimal.Decimal {
	return s.taxRate
}

// ResolveUnitPrice resolves the effective per-unit price of an item at a
// location: the location's price override when present, otherwise the base
// price, plus the chosen size's adjustment.
//
// Availability is enforced here, at commit time: an item flagged unavailable,
// either by the catalog or by its location override, fails with
// ErrItemUnavailable. A nil override inherits catalog defaults.
func (s PricingService) ResolveUnitPrice(
	item menu.MenuItem,
	override *menu.LocationOverride,
	size *menu.SizeVariant,
) (kernel.Money, error) {
	if err := item.Validate(); err != nil {
		return kernel.Money{}, err
	}
	if !menu.AvailableAt(item, override) {
		return kernel.Money{}, fmt.Errorf("%w: %s", ErrItemUnavailable, item.Name())
	}

	price := item.BasePrice()
	if override != nil && override.PriceOverride != nil {
		price = *override.PriceOverride
	}
	if size != nil {
		price = price.Add(size.PriceAdjustment)
	}

	if price.IsNegative() {
		return kernel.Money{}, fmt.Errorf("%w: %s resolves to %s", ErrInvalidPrice, item.Name(), price)
	}
	return price, nil
}

// LineTotal computes (unitPrice + sum of modifier adjustments) * quantity,
// rounded half-up to 2 places.
func (s PricingService) LineTotal(
	unitPrice kernel.Money,
	modifiers []order.Modifier,
	quantity int,
) (kernel.Money, error) {
	if quantity <= 0 {
		return kernel.Money{}, fmt.Errorf("%w: quantity %d is not greater than 0", ErrInvalidPrice, quantity)
	}

	perUnit := unitPrice
	for _, m := range modifiers {
		perUnit = perUnit.Add(m.PriceAdjustment)
	}
	if perUnit.IsNegative() {
		return kernel.Money{}, fmt.Errorf("%w: per-unit price resolves to %s", ErrInvalidPrice, perUnit)
	}

	return perUnit.Times(quantity).Round(), nil
}

// OrderTotals computes the authoritative order figures from line totals:
// subtotal is the exact sum, tax is round(subtotal * rate, 2), total is
// subtotal + tax.
func (s PricingService) OrderTotals(lineTotals []kernel.Money) order.Totals {
	subtotal := kernel.ZeroMoney()
	for _, lt := range lineTotals {
		subtotal = subtotal.Add(lt)
	}

	tax := subtotal.ApplyRate(s.taxRate)
	return order.Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
