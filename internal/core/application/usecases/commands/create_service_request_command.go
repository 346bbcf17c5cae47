package commands

import (
	"errors"
	"fmt"

	"orderhub/internal/core/domain/model/servicerequest"
	"orderhub/internal/pkg/errs"
	"orderhub/internal/pkg/guard"
)

var ErrCreateServiceRequestCommandIsNotConstructed = errors.New(
	"CreateServiceRequestCommand must be created via NewCreateServiceRequestCommand constructor",
)

// CreateServiceRequestCommand raises a table's ask for staff attention or
// the bill. Repeated taps while a matching request is still pending are
// absorbed rather than duplicated.
type CreateServiceRequestCommand struct { //nolint:recvcheck //using for validation
	tableNumber int
	requestType servicerequest.Type

	guard guard.ConstructorGuard
}

// NewCreateServiceRequestCommand creates a command to raise a service request.
func NewCreateServiceRequestCommand(tableNumber int, requestType servicerequest.Type) (CreateServiceRequestCommand, error) {
	cmd := CreateServiceRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if tableNumber <= 0 {
		return CreateServiceRequestCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"table number", fmt.Errorf("%d is not greater than 0", tableNumber),
		)
	}
	if _, err := servicerequest.ParseType(string(requestType)); err != nil {
		return CreateServiceRequestCommand{}, err
	}

	cmd.tableNumber = tableNumber
	cmd.requestType = requestType
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateServiceRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateServiceRequestCommandIsNotConstructed)
}

// TableNumber returns the table raising the request.
func (c CreateServiceRequestCommand) TableNumber() int {
	return c.tableNumber
}

// Type returns the kind of service requested.
func (c CreateServiceRequestCommand) Type() servicerequest.Type {
	return c.requestType
}
