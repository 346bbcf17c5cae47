package order

import (
	"fmt"

	"orderhub/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow the
// fulfillment workflow and never move backwards or skip preparation steps.
//
// Happy path:
//
//	new -> accepted -> in_progress -> ready -> served -> completed
//
// ready may also close directly to completed: pickup and delivery flows end
// fulfillment at ready, and the handover is recorded as completion.
//
// Terminal exception states (reachable from any non-terminal status):
// customer_cancelled, kitchen_cancelled, out_of_stock, refunded, cancelled.
// Once terminal, no further transition is permitted.
//
// The operator-edit annotation ("modified") is not a Status: it is applied
// alongside a real status and lives on the Order itself.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status assigned at checkout.
	New

	// Accepted indicates the kitchen has taken the order.
	Accepted

	// InProgress indicates the kitchen is preparing the order.
	// This is the canonical name; legacy consumers may still say "preparing"
	// (see StatusAliases).
	InProgress

	// Ready indicates the order is prepared and awaiting handover.
	Ready

	// Served indicates a dine-in order has been brought to the table.
	Served

	// Completed indicates fulfillment finished. Terminal.
	Completed

	// CustomerCancelled indicates the customer withdrew the order. Terminal.
	CustomerCancelled

	// KitchenCancelled indicates the kitchen rejected the order. Terminal.
	KitchenCancelled

	// OutOfStock indicates the order could not be fulfilled. Terminal.
	OutOfStock

	// Refunded indicates the order was refunded after the fact. Terminal.
	Refunded

	// Cancelled indicates a generic administrative cancellation. Terminal.
	Cancelled
)

// StatusAliases maps legacy status spellings used by older consumer views to
// the canonical value. The state machine itself only ever emits canonical
// names; the alias table exists so legacy consumers can be translated at the
// boundary instead of leaking two names for one state into the core.
var StatusAliases = map[string]string{
	"preparing": "in_progress",
}

func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "unknown",
		New:               "new",
		Accepted:          "accepted",
		InProgress:        "in_progress",
		Ready:             "ready",
		Served:            "served",
		Completed:         "completed",
		CustomerCancelled: "customer_cancelled",
		KitchenCancelled:  "kitchen_cancelled",
		OutOfStock:        "out_of_stock",
		Refunded:          "refunded",
		Cancelled:         "cancelled",
	}
}

// ParseStatus converts a wire representation into a Status.
// Legacy aliases (see StatusAliases) are accepted and normalized.
// Returns an error for unrecognized values.
func ParseStatus(s string) (Status, error) {
	if canonical, ok := StatusAliases[s]; ok {
		s = canonical
	}
	for status, str := range statusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known order status", s))
}

// Validate checks that the Status is one of the defined lifecycle values.
// Unknown (the zero value) is invalid.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical snake_case name of the status.
// Implements fmt.Stringer; safe to call on any value.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case Completed, CustomerCancelled, KitchenCancelled, OutOfStock, Refunded, Cancelled:
		return true
	default:
		return false
	}
}

// isException reports whether the status is a terminal exception state.
func (s Status) isException() bool {
	switch s {
	case CustomerCancelled, KitchenCancelled, OutOfStock, Refunded, Cancelled:
		return true
	default:
		return false
	}
}

// Next returns the deterministic next happy-path status.
// Returns (Unknown, false) when the status is terminal or Ready: pickup and
// delivery flows may end fulfillment at Ready, so advancing past it is an
// explicit decision (a served/completed transition), never an automatic step.
func (s Status) Next() (Status, bool) {
	switch s {
	case New:
		return Accepted, true
	case Accepted:
		return InProgress, true
	case InProgress:
		return Ready, true
	case Served:
		return Completed, true
	default:
		return Unknown, false
	}
}

// CanTransitionTo reports whether target is reachable from s in one step.
//
// Happy-path steps move strictly forward; Ready may close either through
// Served or directly to Completed. Any non-terminal status may move to any
// terminal exception state. Backward and skipping moves are rejected.
func (s Status) CanTransitionTo(target Status) bool {
	if s.IsTerminal() {
		return false
	}
	if target.isException() {
		return true
	}

	switch s {
	case New:
		return target == Accepted
	case Accepted:
		return target == InProgress
	case InProgress:
		return target == Ready
	case Ready:
		return target == Served || target == Completed
	case Served:
		return target == Completed
	default:
		return false
	}
}
