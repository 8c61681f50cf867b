package ports

import (
	"context"
)

// EventPublisher is the outbound contract for lifecycle notifications.
// Publishing is at-least-once and fire-and-forget: command handlers call it
// only after the store has committed, log any returned error, and never
// surface it to the caller or roll back the state change.
type EventPublisher interface {
	// Publish emits a named event with an arbitrary JSON-serializable payload.
	Publish(ctx context.Context, name string, payload any) error
}
