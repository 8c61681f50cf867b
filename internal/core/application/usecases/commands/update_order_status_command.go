package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents an explicit request to move an order to
// a target status along the transition table. The optional location is the
// reporter's position at the time of the update (e.g. the courier going out
// for delivery); it is informational only.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	targetStatus order.Status
	location     string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to request a status transition.
// The target must be a valid status; whether the edge exists is decided by
// the aggregate against the current status at handling time.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	targetStatus order.Status,
	location string,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		location: location,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTargetStatus(targetStatus),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TargetStatus returns the requested status.
func (c UpdateOrderStatusCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// Location returns the optional reporter location, empty when not supplied.
func (c UpdateOrderStatusCommand) Location() string {
	return c.location
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setTargetStatus(targetStatus order.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}
	c.targetStatus = targetStatus
	return nil
}
