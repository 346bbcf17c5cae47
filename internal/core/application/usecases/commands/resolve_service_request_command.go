package commands

import (
	"errors"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/guard"
)

var ErrResolveServiceRequestCommandIsNotConstructed = errors.New(
	"ResolveServiceRequestCommand must be created via NewResolveServiceRequestCommand constructor",
)

// ResolveServiceRequestCommand marks a table's request as handled by staff.
type ResolveServiceRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	actor     *kernel.UUID

	guard guard.ConstructorGuard
}

// NewResolveServiceRequestCommand creates a command to resolve a service
// request. The actor identifies the staff member for audit attribution.
func NewResolveServiceRequestCommand(requestID kernel.UUID, actor *kernel.UUID) (ResolveServiceRequestCommand, error) {
	cmd := ResolveServiceRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := requestID.Validate(); err != nil {
		return ResolveServiceRequestCommand{}, err
	}
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return ResolveServiceRequestCommand{}, err
		}
	}

	cmd.requestID = requestID
	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveServiceRequestCommand) Validate() error {
	return c.guard.Validate(ErrResolveServiceRequestCommandIsNotConstructed)
}

// RequestID returns the request to resolve.
func (c ResolveServiceRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// Actor returns the resolving staff member, or nil.
func (c ResolveServiceRequestCommand) Actor() *kernel.UUID {
	return c.actor
}
