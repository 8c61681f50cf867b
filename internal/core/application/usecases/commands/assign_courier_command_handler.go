package commands

import (
	"context"
	"errors"
	"log/slog"

	"fooddelivery/internal/core/application/events"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// AssignCourierCommandHandler records a courier assignment on an order.
// A fresh 4-digit delivery PIN is generated and persisted together with the
// courier id; the PIN is never regenerated for the same order. Emits
// courier_assigned carrying the updated order, the courier id, and the PIN
// (in-band to the courier channel) after commit.
//
// Courier notifications may race order visibility, so a missing order is
// logged and swallowed. Re-assignment is rejected with
// order.ErrCourierAlreadyAssigned: rotating the PIN would strand the courier
// already holding the original code.
type AssignCourierCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAssignCourierCommandHandler creates a handler for courier assignments.
func NewAssignCourierCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "assign_courier_handler"),
	}
}

// Handle processes the courier assignment.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.WarnContext(ctx, "courier assigned to unknown order",
			"order_id", cmd.OrderID().String(), "courier_id", cmd.CourierID())
		return nil
	}
	if err != nil {
		return err
	}

	pin := order.NewRandomPinCode()
	if err = aggregate.AssignCourier(cmd.CourierID(), pin); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, h.logger, events.CourierAssignedName,
		events.CourierAssigned{
			OrderPayload:      events.NewOrderPayload(aggregate),
			AssignedCourierID: aggregate.CourierID(),
			PinCode:           aggregate.PinCode().String(),
		})

	return nil
}
