// Package redis provides the Redis pub/sub implementation of the outbound
// event publisher. Each event name maps to a channel of the same name;
// payloads travel as JSON.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
)

// EventPublisher publishes order lifecycle events to Redis channels.
// Delivery is at-least-once from the caller's perspective: callers invoke it
// only after their transaction committed, and a publish failure never undoes
// the committed state change.
type EventPublisher struct {
	client *goredis.Client
	logger *slog.Logger
}

// NewEventPublisher creates a publisher over an established Redis client.
func NewEventPublisher(client *goredis.Client, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{
		client: client,
		logger: logger.With("component", "redis_event_publisher"),
	}
}

// Publish serializes the payload as JSON and publishes it to the channel
// named after the event.
func (p *EventPublisher) Publish(ctx context.Context, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", name, err)
	}

	if err := p.client.Publish(ctx, name, data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", name, err)
	}

	p.logger.DebugContext(ctx, "event published", "event", name, "bytes", len(data))
	return nil
}
