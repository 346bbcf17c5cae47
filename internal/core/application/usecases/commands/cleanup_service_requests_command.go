package commands

import (
	"errors"
	"time"

	"orderhub/internal/pkg/errs"
	"orderhub/internal/pkg/guard"
)

// ErrCleanupServiceRequestsCommandIsNotConstructed is returned when the
// command was not created through the constructor.
var ErrCleanupServiceRequestsCommandIsNotConstructed = errors.New(
	"CleanupServiceRequestsCommand must be created via NewCleanupServiceRequestsCommand")

// CleanupServiceRequestsCommand removes resolved service requests older than
// the cutoff. Pending requests are never touched.
type CleanupServiceRequestsCommand struct {
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewCleanupServiceRequestsCommand creates a cleanup command.
func NewCleanupServiceRequestsCommand(cutoff time.Time) (CleanupServiceRequestsCommand, error) {
	if cutoff.IsZero() {
		return CleanupServiceRequestsCommand{}, errs.NewValueIsRequiredError("cutoff")
	}

	return CleanupServiceRequestsCommand{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CleanupServiceRequestsCommand) Validate() error {
	return c.guard.Validate(ErrCleanupServiceRequestsCommandIsNotConstructed)
}

// Cutoff returns the retention boundary. Resolved requests with a resolution
// time before it are deleted.
func (c CleanupServiceRequestsCommand) Cutoff() time.Time {
	return c.cutoff
}
