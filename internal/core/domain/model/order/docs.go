// Package order provides domain entities and business logic for order
// lifecycle management in the restaurant system. It implements the Order
// aggregate root, its immutable item snapshots and the status state machine.
//
// The package includes:
//   - Order: The aggregate root that owns the order's canonical lifecycle
//   - Item: Immutable order lines snapshotted from the catalog at checkout
//   - Status: A state machine that enforces valid status transitions
//
// Key business rules:
//   - Orders are created once as a unit with their items; items never change
//   - Status follows new -> accepted -> in_progress -> ready -> served -> completed,
//     with terminal exception states reachable from any non-terminal status
//   - Terminal orders never transition again
//   - The note history is append-only and display-only; the audit log is the
//     authoritative structured history
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
