package projections

import (
	"encoding/json"
	"sync"

	"orderhub/internal/core/ports"
)

// KitchenAlerter decides when the kitchen display should sound. The feed is
// at-least-once, so a reconnect replays events the display already handled;
// the alerter dedupes by (order id, status) and fires only on a genuinely
// new order insertion.
type KitchenAlerter struct {
	mu   sync.Mutex
	seen map[string]map[string]struct{}
}

// NewKitchenAlerter creates an alerter with no observed history.
func NewKitchenAlerter() *KitchenAlerter {
	return &KitchenAlerter{seen: make(map[string]map[string]struct{})}
}

// Observe folds one event into the history and reports whether the display
// should alert. Exactly one true per order insertion: replays of an
// already-seen (order, status) pair stay silent, as do status updates.
func (a *KitchenAlerter) Observe(event ports.Event) bool {
	if event.Entity != ports.EntityOrder {
		return false
	}

	var payload struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil || payload.ID == "" {
		return false
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	statuses, known := a.seen[payload.ID]
	if !known {
		statuses = make(map[string]struct{})
		a.seen[payload.ID] = statuses
	}

	_, seenPair := statuses[payload.Status]
	statuses[payload.Status] = struct{}{}

	return event.Action == ports.ActionInsert && !known && !seenPair
}

// Forget drops an order's history, typically after a delete event.
func (a *KitchenAlerter) Forget(orderID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.seen, orderID)
}
