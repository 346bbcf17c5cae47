package queries

import (
	"errors"
	"fmt"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"
	"orderhub/internal/pkg/guard"
)

var (
	ErrGetTableOrdersQueryIsNotConstructed = errors.New(
		"GetTableOrdersQuery must be created via NewGetTableOrdersQuery constructor",
	)
)

// GetTableOrdersQuery retrieves a table's orders for customer tracking. The
// verification code is the capability: it is matched in the WHERE clause, so
// a wrong code yields zero rows rather than an authorization error, and no
// information leaks about whether the table has orders at all.
type GetTableOrdersQuery struct {
	tableNumber      int
	verificationCode string

	guard guard.ConstructorGuard
}

// NewGetTableOrdersQuery creates a tracking query for one table.
func NewGetTableOrdersQuery(tableNumber int, verificationCode string) (GetTableOrdersQuery, error) {
	if tableNumber <= 0 {
		return GetTableOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"table number", fmt.Errorf("%d is not greater than 0", tableNumber))
	}
	if verificationCode == "" {
		return GetTableOrdersQuery{}, errs.NewValueIsRequiredError("verification code")
	}

	return GetTableOrdersQuery{
		tableNumber:      tableNumber,
		verificationCode: verificationCode,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetTableOrdersQueryIsNotConstructed)
}

// TableNumber returns the table being tracked.
func (q GetTableOrdersQuery) TableNumber() int {
	return q.tableNumber
}

// VerificationCode returns the presented capability token.
func (q GetTableOrdersQuery) VerificationCode() string {
	return q.verificationCode
}

// TableOrderItemResponse is one line of a tracked order.
type TableOrderItemResponse struct {
	Name      string
	Quantity  int
	LineTotal kernel.Money
}

// TableOrderResponse is one tracked order with its lines.
type TableOrderResponse struct {
	ID        kernel.UUID
	Number    int64
	Status    order.Status
	Total     kernel.Money
	CreatedAt time.Time
	Items     []TableOrderItemResponse
}
