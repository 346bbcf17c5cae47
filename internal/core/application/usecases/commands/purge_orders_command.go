package commands

import (
	"errors"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"
	"orderhub/internal/pkg/guard"
)

var ErrPurgeOrdersCommandIsNotConstructed = errors.New(
	"PurgeOrdersCommand must be created via NewPurgeOrdersCommand constructor",
)

// PurgeOrdersCommand removes every order created on one calendar day,
// typically a test day, while keeping the audit trail of what was removed.
type PurgeOrdersCommand struct { //nolint:recvcheck //using for validation
	day   time.Time
	actor *kernel.UUID

	guard guard.ConstructorGuard
}

// NewPurgeOrdersCommand creates a command to purge a day's orders. The actor
// identifies the administrator for audit attribution.
func NewPurgeOrdersCommand(day time.Time, actor *kernel.UUID) (PurgeOrdersCommand, error) {
	cmd := PurgeOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if day.IsZero() {
		return PurgeOrdersCommand{}, errs.NewValueIsRequiredError("purge day")
	}
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return PurgeOrdersCommand{}, err
		}
	}

	cmd.day = day
	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PurgeOrdersCommand) Validate() error {
	return c.guard.Validate(ErrPurgeOrdersCommandIsNotConstructed)
}

// Day returns the calendar day whose orders are purged.
func (c PurgeOrdersCommand) Day() time.Time {
	return c.day
}

// Actor returns the acting administrator, or nil.
func (c PurgeOrdersCommand) Actor() *kernel.UUID {
	return c.actor
}
