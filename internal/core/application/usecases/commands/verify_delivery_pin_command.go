package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrVerifyDeliveryPinCommandIsNotConstructed = errors.New(
		"VerifyDeliveryPinCommand must be created via NewVerifyDeliveryPinCommand constructor",
	)
	ErrPinIsRequired = errors.New("pin is required")
)

// VerifyDeliveryPinCommand carries a delivery handoff attempt: the order and
// the PIN the courier obtained from the customer.
type VerifyDeliveryPinCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	suppliedPin string

	guard guard.ConstructorGuard
}

// NewVerifyDeliveryPinCommand creates a command to verify a delivery PIN.
// The supplied PIN is kept as an opaque string: a malformed guess is still a
// guess, answered with a negative result rather than a validation error.
func NewVerifyDeliveryPinCommand(orderID kernel.UUID, suppliedPin string) (VerifyDeliveryPinCommand, error) {
	cmd := VerifyDeliveryPinCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSuppliedPin(suppliedPin),
	); err != nil {
		return VerifyDeliveryPinCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyDeliveryPinCommand) Validate() error {
	return c.guard.Validate(ErrVerifyDeliveryPinCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being delivered.
func (c VerifyDeliveryPinCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SuppliedPin returns the PIN presented at handoff.
func (c VerifyDeliveryPinCommand) SuppliedPin() string {
	return c.suppliedPin
}

func (c *VerifyDeliveryPinCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *VerifyDeliveryPinCommand) setSuppliedPin(suppliedPin string) error {
	if suppliedPin == "" {
		return ErrPinIsRequired
	}
	c.suppliedPin = suppliedPin
	return nil
}
