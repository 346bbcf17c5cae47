package commands

import (
	"errors"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand asks for an order's deterministic next happy-path
// step: the kitchen display's single-button progression.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to advance an order one step.
// The actor identifies the staff member for audit attribution; nil means the
// system acted.
func NewAdvanceOrderCommand(orderID kernel.UUID, actor *kernel.UUID) (AdvanceOrderCommand, error) {
	cmd := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return AdvanceOrderCommand{}, err
	}
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return AdvanceOrderCommand{}, err
		}
	}

	cmd.orderID = orderID
	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the acting staff member, or nil.
func (c AdvanceOrderCommand) Actor() *kernel.UUID {
	return c.actor
}
