package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// EventPublisher delivers domain events to live subscribers.
//
// Publication is fire-and-forget: implementations must not block the
// caller on slow consumers and must isolate per-subscriber delivery
// failures. Command handlers publish only after a confirmed persistence
// commit, so subscribers never observe a change that failed to save.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.Event)
}
