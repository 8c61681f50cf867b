package commands

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/ports"
)

// publishEvent emits a lifecycle event after a successful commit.
// Emission is at-least-once and fire-and-forget: a publish failure is logged
// and never surfaced to the caller, and it does not roll back the state
// change that triggered it.
func publishEvent(ctx context.Context, publisher ports.EventPublisher, logger *slog.Logger, name string, payload any) {
	if err := publisher.Publish(ctx, name, payload); err != nil {
		logger.ErrorContext(ctx, "event publish failed", "event", name, "error", err)
	}
}
