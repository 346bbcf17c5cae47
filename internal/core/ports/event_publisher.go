package ports

import (
	"context"
	"encoding/json"

	"orderhub/internal/core/domain/model/kernel"
)

// Event entities and actions carried on the realtime bus.
const (
	EntityOrder          = "order"
	EntityServiceRequest = "service_request"

	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Event is the envelope delivered to realtime subscribers after a durable
// write. Scope fields route it: LocationID targets location-scoped
// subscribers, TableNumber plus VerificationCode target a single table's
// tracking view. Global subscribers receive every event.
type Event struct {
	Entity  string          `json:"entity"`
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`

	LocationID       *kernel.UUID `json:"-"`
	TableNumber      *int         `json:"-"`
	VerificationCode string       `json:"-"`
}

// EventPublisher fans events out to realtime subscribers.
//
// Publish is fire-and-forget from the writer's perspective: it is called
// only after the durable write committed, never blocks on slow or dead
// subscribers, and never returns delivery failures to the mutating caller
// (implementations log them instead).
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}
