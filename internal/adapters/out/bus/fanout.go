package bus

import (
	"context"

	"orderhub/internal/core/ports"
)

// FanoutPublisher forwards each event to several publishers, typically the
// in-process hub plus the AMQP bridge.
type FanoutPublisher struct {
	publishers []ports.EventPublisher
}

// NewFanoutPublisher combines publishers into one.
func NewFanoutPublisher(publishers ...ports.EventPublisher) *FanoutPublisher {
	return &FanoutPublisher{publishers: publishers}
}

// Publish delivers the event to every wrapped publisher in order.
func (p *FanoutPublisher) Publish(ctx context.Context, event ports.Event) {
	for _, publisher := range p.publishers {
		publisher.Publish(ctx, event)
	}
}
