package queries

import (
	"context"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads order summaries straight from the orders
// table, bypassing the aggregate. Items are deliberately not loaded; the
// dashboard drills into a single order through GetTableOrders or the
// repository when it needs line detail.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for dashboard order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the filtered listing. Results are ordered newest first and
// the total match count ignores pagination.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	where := "1 = 1"
	args := make([]any, 0, 4)

	if status := query.Status(); status != nil {
		where += " AND status = ?"
		args = append(args, int(*status))
	}
	if orderType := query.OrderType(); orderType != nil {
		where += " AND order_type = ?"
		args = append(args, string(*orderType))
	}
	if table := query.TableNumber(); table != nil {
		where += " AND table_number = ?"
		args = append(args, *table)
	}
	if locationID := query.LocationID(); locationID != nil {
		where += " AND location_id = ?"
		args = append(args, locationID.Bytes())
	}

	var totalCount int64
	err := h.db.WithContext(ctx).Raw(
		"SELECT COUNT(*) FROM orders WHERE "+where, args...,
	).Scan(&totalCount).Error
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	offset := (query.Page() - 1) * query.PageSize()
	pageArgs := append(args, query.PageSize(), offset)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			order_type,
			table_number,
			customer_name,
			total,
			modified,
			created_at
		FROM orders
		WHERE `+where+`
		ORDER BY created_at DESC, order_number DESC
		LIMIT ? OFFSET ?
	`, pageArgs...).Rows()
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	defer rows.Close()

	orders := make([]OrderSummaryResponse, 0, query.PageSize())
	for rows.Next() {
		var (
			id           uuid.UUID
			number       int64
			status       int
			orderType    string
			tableNumber  *int
			customerName string
			total        string
			modified     bool
			createdAt    time.Time
		)

		err = rows.Scan(
			&id,
			&number,
			&status,
			&orderType,
			&tableNumber,
			&customerName,
			&total,
			&modified,
			&createdAt,
		)
		if err != nil {
			return ListOrdersQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return ListOrdersQueryResponse{}, idErr
		}
		totalMoney, moneyErr := kernel.NewMoneyFromString(total)
		if moneyErr != nil {
			return ListOrdersQueryResponse{}, moneyErr
		}

		orders = append(orders, OrderSummaryResponse{
			ID:           orderID,
			Number:       number,
			Status:       order.Status(status),
			OrderType:    order.OrderType(orderType),
			TableNumber:  tableNumber,
			CustomerName: customerName,
			Total:        totalMoney,
			Modified:     modified,
			CreatedAt:    createdAt,
		})
	}
	if err = rows.Err(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	return ListOrdersQueryResponse{
		Orders:     orders,
		TotalCount: totalCount,
		Page:       query.Page(),
		PageSize:   query.PageSize(),
	}, nil
}
