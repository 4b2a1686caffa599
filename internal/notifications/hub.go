// Package notifications implements the in-process fan-out of order events
// to live subscribers. The hub keeps a registry of channel-backed
// subscriptions; delivery is best-effort to the connections live at
// broadcast time, with no replay and no backlog.
package notifications

import (
	"context"
	"log/slog"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// DefaultBufferSize is the per-subscriber channel buffer used when the
// hub is created with a non-positive size.
const DefaultBufferSize = 16

// Subscription is one live subscriber connection. Events arrive on the
// channel in publish order until Unsubscribe.
type Subscription struct {
	id     kernel.UUID
	events chan order.Event
}

// ID returns the subscription's unique identifier, used to unsubscribe.
func (s *Subscription) ID() kernel.UUID {
	return s.id
}

// Events returns the channel events are delivered on. The channel is
// never closed by the hub; consumers stop by unsubscribing and returning.
func (s *Subscription) Events() <-chan order.Event {
	return s.events
}

// Hub is the connection registry and broadcaster. A slow or dead
// subscriber loses events rather than blocking the publisher or its
// peers: sends are non-blocking against the subscription's buffer.
//
// Hub implements ports.EventPublisher, so command handlers broadcast
// through it without knowing about connections.
type Hub struct {
	mu     sync.RWMutex
	subs   map[kernel.UUID]*Subscription
	buffer int
	logger *slog.Logger
}

// NewHub creates a hub with the given per-subscriber buffer size.
// A non-positive size falls back to DefaultBufferSize.
func NewHub(logger *slog.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBufferSize
	}

	return &Hub{
		subs:   make(map[kernel.UUID]*Subscription),
		buffer: buffer,
		logger: logger.With(slog.String("component", "notification_hub")),
	}
}

// Subscribe registers a new subscriber and returns its subscription.
func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{
		id:     kernel.NewUUID(),
		events: make(chan order.Event, h.buffer),
	}

	h.mu.Lock()
	h.subs[sub.id] = sub
	h.mu.Unlock()

	h.logger.Debug("subscriber connected", slog.String("subscription_id", sub.id.String()))
	return sub
}

// Unsubscribe removes the subscription from the registry. The events
// channel is left open so a broadcast racing the disconnect can never
// panic on a closed channel; the channel is garbage collected with the
// subscription.
func (h *Hub) Unsubscribe(id kernel.UUID) {
	h.mu.Lock()
	_, ok := h.subs[id]
	delete(h.subs, id)
	h.mu.Unlock()

	if ok {
		h.logger.Debug("subscriber disconnected", slog.String("subscription_id", id.String()))
	}
}

// Broadcast delivers the event to every current subscriber. Zero
// subscribers is a no-op. Subscribers whose buffer is full are skipped
// and the drop is logged.
func (h *Hub) Broadcast(event order.Event) {
	h.mu.RLock()
	targets := make([]*Subscription, 0, len(h.subs))
	for _, sub := range h.subs {
		targets = append(targets, sub)
	}
	h.mu.RUnlock()

	for _, sub := range targets {
		select {
		case sub.events <- event:
		default:
			h.logger.Warn("subscriber too slow, event dropped",
				slog.String("subscription_id", sub.id.String()),
				slog.String("event", event.Name),
			)
		}
	}
}

// Publish implements the EventPublisher port by broadcasting each event
// in order.
func (h *Hub) Publish(_ context.Context, events ...order.Event) {
	for _, event := range events {
		h.Broadcast(event)
	}
}

// SubscriberCount returns the number of live subscriptions.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
