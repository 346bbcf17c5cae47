// Package services provides domain services that implement business logic
// spanning multiple domain objects.
//
// The package includes:
//   - PricingService: resolves effective item prices (location override, size,
//     modifiers) and computes authoritative order totals with fixed-point
//     decimal arithmetic
//
// Domain services stay stateless and operate purely on domain values,
// following Domain-Driven Design principles.
package services
