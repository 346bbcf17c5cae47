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
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListOrdersQuery retrieves order summaries for the operations dashboard.
// All filters are optional; unset filters match every order. Results are
// paginated and ordered by creation time, newest first.
//
// Example:
//
//	query, err := NewListOrdersQuery("in_progress", "", 0, nil, 1, 20)
//	if err != nil {
//	    return err
//	}
//	handler := NewListOrdersQueryHandler(db)
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	fmt.Printf("%d of %d orders\n", len(page.Orders), page.TotalCount)
type ListOrdersQuery struct {
	status      *order.Status
	orderType   *order.OrderType
	tableNumber *int
	locationID  *kernel.UUID
	page        int
	pageSize    int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a filtered, paginated order listing query.
// Empty status/orderType strings, a zero tableNumber and a nil locationID
// mean "no filter". Page numbering starts at 1; pageSize 0 selects the
// default of 20, capped at 100.
func NewListOrdersQuery(
	status string,
	orderType string,
	tableNumber int,
	locationID *kernel.UUID,
	page int,
	pageSize int,
) (ListOrdersQuery, error) {
	query := ListOrdersQuery{
		page:     page,
		pageSize: pageSize,
		guard:    guard.NewConstructorGuard(),
	}

	if status != "" {
		parsed, err := order.ParseStatus(status)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		query.status = &parsed
	}
	if orderType != "" {
		parsed, err := order.ParseOrderType(orderType)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		query.orderType = &parsed
	}
	if tableNumber < 0 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"table number", fmt.Errorf("%d is negative", tableNumber))
	}
	if tableNumber > 0 {
		query.tableNumber = &tableNumber
	}
	if locationID != nil {
		if err := locationID.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
		query.locationID = locationID
	}

	if page < 1 {
		query.page = 1
	}
	if pageSize <= 0 {
		query.pageSize = defaultPageSize
	}
	if query.pageSize > maxPageSize {
		query.pageSize = maxPageSize
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Status returns the status filter, or nil when unfiltered.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

// OrderType returns the order type filter, or nil when unfiltered.
func (q ListOrdersQuery) OrderType() *order.OrderType {
	return q.orderType
}

// TableNumber returns the table filter, or nil when unfiltered.
func (q ListOrdersQuery) TableNumber() *int {
	return q.tableNumber
}

// LocationID returns the location filter, or nil when unfiltered.
func (q ListOrdersQuery) LocationID() *kernel.UUID {
	return q.locationID
}

// Page returns the 1-based page number.
func (q ListOrdersQuery) Page() int {
	return q.page
}

// PageSize returns the number of rows per page.
func (q ListOrdersQuery) PageSize() int {
	return q.pageSize
}

// OrderSummaryResponse is one dashboard row: enough to triage an order
// without loading its items.
type OrderSummaryResponse struct {
	ID           kernel.UUID
	Number       int64
	Status       order.Status
	OrderType    order.OrderType
	TableNumber  *int
	CustomerName string
	Total        kernel.Money
	Modified     bool
	CreatedAt    time.Time
}

// ListOrdersQueryResponse is one page of order summaries plus the total
// match count for pagination controls.
type ListOrdersQueryResponse struct {
	Orders     []OrderSummaryResponse
	TotalCount int64
	Page       int
	PageSize   int
}
