// Package bus delivers realtime events to subscribers after durable writes.
//
// The Hub is the in-process fan-out used by SSE connections and display
// consumers; AMQPPublisher bridges the same events onto RabbitMQ for
// out-of-process consumers. Both implement ports.EventPublisher and both are
// fire-and-forget: a slow or dead subscriber never blocks or fails the
// mutation that produced the event.
package bus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/ports"
)

// Topic scopes a subscription. Global subscribers receive every event,
// location subscribers receive events for one location, table subscribers
// receive events for one table and must present the table's verification
// code.
type Topic struct {
	kind             topicKind
	locationID       kernel.UUID
	tableNumber      int
	verificationCode string
}

type topicKind int

const (
	topicGlobal topicKind = iota
	topicLocation
	topicTable
)

// GlobalTopic subscribes to every event. Used by the kitchen display and the
// operations dashboard.
func GlobalTopic() Topic {
	return Topic{kind: topicGlobal}
}

// LocationTopic subscribes to one location's events.
func LocationTopic(locationID kernel.UUID) Topic {
	return Topic{kind: topicLocation, locationID: locationID}
}

// TableTopic subscribes to one table's events. Delivery additionally
// requires the event's verification code to match: a wrong code yields a
// silent, empty subscription rather than an error, so the code cannot be
// probed.
func TableTopic(tableNumber int, verificationCode string) Topic {
	return Topic{kind: topicTable, tableNumber: tableNumber, verificationCode: verificationCode}
}

// String renders the topic for routing keys and logs. The verification code
// is deliberately omitted.
func (t Topic) String() string {
	switch t.kind {
	case topicLocation:
		return "location:" + t.locationID.String()
	case topicTable:
		return fmt.Sprintf("table:%d", t.tableNumber)
	default:
		return "global"
	}
}

// matches reports whether an event should be delivered to this topic.
// Table matching enforces the verification code here, at the publish
// boundary; clients never self-filter.
func (t Topic) matches(event ports.Event) bool {
	switch t.kind {
	case topicGlobal:
		return true
	case topicLocation:
		return event.LocationID != nil && event.LocationID.IsEqual(t.locationID)
	case topicTable:
		if event.TableNumber == nil || *event.TableNumber != t.tableNumber {
			return false
		}
		return event.VerificationCode != "" && event.VerificationCode == t.verificationCode
	default:
		return false
	}
}

// Subscription is one consumer's ordered event feed. Events arrive on
// Events() in publish order for this subscriber; no ordering holds across
// subscribers.
type Subscription struct {
	topic Topic
	out   chan ports.Event

	mu      sync.Mutex
	pending []ports.Event
	wake    chan struct{}
	closed  bool
	done    chan struct{}
}

// Events returns the subscriber's ordered feed. The channel is closed when
// the subscription is cancelled or the hub shuts down.
func (s *Subscription) Events() <-chan ports.Event {
	return s.out
}

// Topic returns the subscription's scope.
func (s *Subscription) Topic() Topic {
	return s.topic
}

// enqueue appends an event without ever blocking the publisher. The pump
// goroutine drains pending into the out channel at the consumer's pace.
func (s *Subscription) enqueue(event ports.Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pending = append(s.pending, event)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Subscription) pump() {
	defer close(s.out)
	for {
		s.mu.Lock()
		batch := s.pending
		s.pending = nil
		s.mu.Unlock()

		for _, event := range batch {
			select {
			case s.out <- event:
			case <-s.done:
				return
			}
		}

		select {
		case <-s.wake:
		case <-s.done:
			return
		}
	}
}

func (s *Subscription) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	close(s.done)
}

// Hub is the in-process event fan-out. Publish matches the event against
// every live subscription and enqueues it on each match; each subscription
// drains independently, so one stalled consumer delays nobody else and a
// cancelled subscription affects neither the producer nor its peers.
type Hub struct {
	log *slog.Logger

	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	closed bool
}

// NewHub creates an event hub.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		log:  log.With("component", "bus"),
		subs: make(map[*Subscription]struct{}),
	}
}

// Subscribe registers a consumer for a topic. The returned subscription must
// be released with Unsubscribe when the consumer disconnects.
func (h *Hub) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{
		topic: topic,
		out:   make(chan ports.Event, 16),
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		sub.close()
		close(sub.out)
		return sub
	}
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	go sub.pump()
	return sub
}

// Unsubscribe removes a subscription and closes its feed.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
	sub.close()
}

// Publish fans the event out to every matching subscription. It never
// blocks and never reports delivery problems to the caller; the durable
// write already happened.
func (h *Hub) Publish(_ context.Context, event ports.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		h.log.Warn("event dropped, hub is closed", "entity", event.Entity, "action", event.Action)
		return
	}

	for sub := range h.subs {
		if sub.topic.matches(event) {
			sub.enqueue(event)
		}
	}
}

// Close shuts the hub down and closes every subscription feed.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	subs := make([]*Subscription, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.subs = make(map[*Subscription]struct{})
	h.mu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
}
