package commands

import (
	"errors"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/guard"
)

var ErrPerformOrderActionCommandIsNotConstructed = errors.New(
	"PerformOrderActionCommand must be created via NewPerformOrderActionCommand constructor",
)

// PerformOrderActionCommand represents an operator action against an order:
// a regular status transition with an optional note, or the privileged admin
// override that bypasses the adjacency rules (and is audited under its own
// action name).
type PerformOrderActionCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	target        order.Status
	note          string
	actor         *kernel.UUID
	adminOverride bool

	guard guard.ConstructorGuard
}

// NewPerformOrderActionCommand creates an operator action command.
func NewPerformOrderActionCommand(
	orderID kernel.UUID,
	target order.Status,
	note string,
	actor *kernel.UUID,
	adminOverride bool,
) (PerformOrderActionCommand, error) {
	cmd := PerformOrderActionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		target.Validate(),
	); err != nil {
		return PerformOrderActionCommand{}, err
	}
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return PerformOrderActionCommand{}, err
		}
	}

	cmd.orderID = orderID
	cmd.target = target
	cmd.note = note
	cmd.actor = actor
	cmd.adminOverride = adminOverride
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PerformOrderActionCommand) Validate() error {
	return c.guard.Validate(ErrPerformOrderActionCommandIsNotConstructed)
}

// OrderID returns the order to act on.
func (c PerformOrderActionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c PerformOrderActionCommand) Target() order.Status {
	return c.target
}

// Note returns the operator note, possibly empty.
func (c PerformOrderActionCommand) Note() string {
	return c.note
}

// Actor returns the acting operator, or nil.
func (c PerformOrderActionCommand) Actor() *kernel.UUID {
	return c.actor
}

// AdminOverride reports whether the adjacency rules are bypassed.
func (c PerformOrderActionCommand) AdminOverride() bool {
	return c.adminOverride
}
