package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrAssignCourierCommandIsNotConstructed = errors.New(
		"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
	)
	ErrCourierIDIsRequired = errors.New("courier id is required")
)

// AssignCourierCommand carries a courier-assigned notification from the
// dispatch service: the order and the courier who will deliver it.
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID string

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a command to record a courier assignment.
func NewAssignCourierCommand(orderID kernel.UUID, courierID string) (AssignCourierCommand, error) {
	cmd := AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being assigned.
func (c AssignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the identifier of the assigned courier.
func (c AssignCourierCommand) CourierID() string {
	return c.courierID
}

func (c *AssignCourierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AssignCourierCommand) setCourierID(courierID string) error {
	if courierID == "" {
		return ErrCourierIDIsRequired
	}
	c.courierID = courierID
	return nil
}
