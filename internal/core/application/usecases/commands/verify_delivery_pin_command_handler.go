package commands

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/application/events"
	"fooddelivery/internal/core/ports"
)

// VerifyDeliveryPinCommandHandler checks a PIN presented at delivery handoff.
// This is the only state-changing operation gated by a secret rather than by
// caller authority. On a match the order moves to DELIVERED and exactly one
// order_delivered event fires; on a mismatch nothing is persisted, no event
// fires, and the negative result is returned as a value, not an error.
// Throttling repeated wrong guesses is a transport-layer concern.
type VerifyDeliveryPinCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewVerifyDeliveryPinCommandHandler creates a handler for PIN verification.
func NewVerifyDeliveryPinCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) VerifyDeliveryPinCommandHandler {
	return VerifyDeliveryPinCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "verify_delivery_pin_handler"),
	}
}

// Handle processes the handoff attempt. Returns whether the PIN matched;
// a missing order surfaces as an error unwrapping to errs.ErrObjectNotFound.
func (h VerifyDeliveryPinCommandHandler) Handle(ctx context.Context, cmd VerifyDeliveryPinCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return false, err
	}

	if !aggregate.VerifyPin(cmd.SuppliedPin()) {
		return false, nil
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	publishEvent(ctx, h.publisher, h.logger, events.OrderDeliveredName,
		events.OrderDelivered{
			OrderID:      aggregate.ID().String(),
			CourierID:    aggregate.CourierID(),
			RestaurantID: aggregate.RestaurantID(),
			TotalAmount:  aggregate.TotalAmount(),
			CustomerID:   aggregate.CustomerID(),
		})

	return true, nil
}
