package commands

import (
	"errors"
	"time"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrExpireStalePaymentsCommandIsNotConstructed = errors.New(
	"ExpireStalePaymentsCommand must be created via NewExpireStalePaymentsCommand constructor",
)

// ExpireStalePaymentsCommand sweeps all unpaid pending orders created before
// the cutoff and fails them. It is the safety net behind the per-order
// expiry notifications: if a notification is lost, the sweep catches the
// order on the next run.
type ExpireStalePaymentsCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewExpireStalePaymentsCommand creates a sweep command for orders created
// before cutoff.
func NewExpireStalePaymentsCommand(cutoff time.Time) (ExpireStalePaymentsCommand, error) {
	if cutoff.IsZero() {
		return ExpireStalePaymentsCommand{}, errs.NewValueIsRequiredError("cutoff")
	}

	return ExpireStalePaymentsCommand{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireStalePaymentsCommand) Validate() error {
	return c.guard.Validate(ErrExpireStalePaymentsCommandIsNotConstructed)
}

// Cutoff returns the creation-time threshold for the sweep.
func (c ExpireStalePaymentsCommand) Cutoff() time.Time {
	return c.cutoff
}
