package redisx

import (
	"context"
	"encoding/json"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"

	"github.com/redis/go-redis/v9"
)

// EventBridge publishes order events to a Redis channel so other
// instances can re-broadcast them to their own subscribers. It implements
// the EventPublisher port.
//
// Publication is best-effort: a Redis failure is logged and never
// surfaced, so a broker outage cannot fail an already-committed command.
type EventBridge struct {
	rdb     *redis.Client
	channel string
	logger  *slog.Logger
}

// NewEventBridge creates a bridge publishing to the given channel.
func NewEventBridge(rdb *redis.Client, channel string, logger *slog.Logger) *EventBridge {
	return &EventBridge{
		rdb:     rdb,
		channel: channel,
		logger:  logger.With(slog.String("component", "redis_event_bridge")),
	}
}

// Publish sends each event's JSON envelope to the Redis channel.
func (b *EventBridge) Publish(ctx context.Context, events ...order.Event) {
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			b.logger.Error("failed to marshal event",
				slog.String("event", event.Name),
				slog.String("error", err.Error()),
			)
			continue
		}

		if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
			b.logger.Error("failed to publish event to redis",
				slog.String("event", event.Name),
				slog.String("error", err.Error()),
			)
		}
	}
}
