// Package projections holds consumer-side read models built from bus events.
// Consumers see an at-least-once feed with per-subscriber ordering only, so
// every projection here must tolerate replays and apply updates
// last-write-wins per order.
package projections

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"orderhub/internal/core/ports"
)

// OrderRow is one order as a display consumer sees it.
type OrderRow struct {
	ID          string    `json:"id"`
	Number      int64     `json:"order_number"`
	Status      string    `json:"status"`
	OrderType   string    `json:"order_type"`
	TableNumber *int      `json:"table_number,omitempty"`
	Modified    bool      `json:"modified"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrderView is a live order board fed by bus events. Replayed or reordered
// deliveries collapse: for each order id only the payload with the newest
// updated_at wins, and a delete removes the row regardless of later replays
// of earlier states.
type OrderView struct {
	mu      sync.RWMutex
	rows    map[string]OrderRow
	deleted map[string]struct{}
}

// NewOrderView creates an empty order board.
func NewOrderView() *OrderView {
	return &OrderView{
		rows:    make(map[string]OrderRow),
		deleted: make(map[string]struct{}),
	}
}

// Apply folds one bus event into the view. Non-order events and malformed
// payloads are ignored; a projection never fails its feed.
func (v *OrderView) Apply(event ports.Event) {
	if event.Entity != ports.EntityOrder {
		return
	}

	var row OrderRow
	if err := json.Unmarshal(event.Payload, &row); err != nil || row.ID == "" {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if event.Action == ports.ActionDelete {
		delete(v.rows, row.ID)
		v.deleted[row.ID] = struct{}{}
		return
	}

	if _, gone := v.deleted[row.ID]; gone {
		return
	}
	if current, ok := v.rows[row.ID]; ok && current.UpdatedAt.After(row.UpdatedAt) {
		return
	}
	v.rows[row.ID] = row
}

// Get returns one order row.
func (v *OrderView) Get(orderID string) (OrderRow, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	row, ok := v.rows[orderID]
	return row, ok
}

// Rows returns the board sorted by order number.
func (v *OrderView) Rows() []OrderRow {
	v.mu.RLock()
	defer v.mu.RUnlock()

	rows := make([]OrderRow, 0, len(v.rows))
	for _, row := range v.rows {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Number < rows[j].Number
	})
	return rows
}

// Len returns the number of live rows.
func (v *OrderView) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.rows)
}
