package queries

import (
	"context"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTableOrdersQueryHandler serves the customer tracking view. The
// verification code match lives in the SQL itself: filtering is enforced
// here at the read boundary, never delegated to the client.
type GetTableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetTableOrdersQueryHandler creates a handler for table tracking queries.
func NewGetTableOrdersQueryHandler(db *gorm.DB) GetTableOrdersQueryHandler {
	return GetTableOrdersQueryHandler{db: db}
}

// Handle returns the table's orders, oldest first, with their lines. A wrong
// verification code returns an empty slice, not an error.
func (h GetTableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetTableOrdersQuery,
) ([]TableOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			total,
			created_at
		FROM orders
		WHERE table_number = ? AND verification_code = ?
		ORDER BY created_at, order_number
	`, query.TableNumber(), query.VerificationCode()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]TableOrderResponse, 0)
	orderIDs := make([]uuid.UUID, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			number    int64
			status    int
			total     string
			createdAt time.Time
		)

		if err = rows.Scan(&id, &number, &status, &total, &createdAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		totalMoney, moneyErr := kernel.NewMoneyFromString(total)
		if moneyErr != nil {
			return nil, moneyErr
		}

		orders = append(orders, TableOrderResponse{
			ID:        orderID,
			Number:    number,
			Status:    order.Status(status),
			Total:     totalMoney,
			CreatedAt: createdAt,
			Items:     make([]TableOrderItemResponse, 0),
		})
		orderIDs = append(orderIDs, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	if err = h.attachItems(ctx, orders, orderIDs); err != nil {
		return nil, err
	}

	return orders, nil
}

func (h GetTableOrdersQueryHandler) attachItems(
	ctx context.Context,
	orders []TableOrderResponse,
	orderIDs []uuid.UUID,
) error {
	byOrder := make(map[uuid.UUID]int, len(orders))
	for i, id := range orderIDs {
		byOrder[id] = i
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			name,
			quantity,
			line_total
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, id
	`, orderIDs).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID   uuid.UUID
			name      string
			quantity  int
			lineTotal string
		)

		if err = rows.Scan(&orderID, &name, &quantity, &lineTotal); err != nil {
			return err
		}

		lineMoney, moneyErr := kernel.NewMoneyFromString(lineTotal)
		if moneyErr != nil {
			return moneyErr
		}

		i, ok := byOrder[orderID]
		if !ok {
			continue
		}
		orders[i].Items = append(orders[i].Items, TableOrderItemResponse{
			Name:      name,
			Quantity:  quantity,
			LineTotal: lineMoney,
		})
	}
	return rows.Err()
}
