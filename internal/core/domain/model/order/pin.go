package order

import (
	"fmt"
	"math/rand/v2"

	"fooddelivery/internal/pkg/errs"
)

const (
	// PinMin and PinMax bound the numeric value of a delivery PIN.
	// Keeping the minimum at 1000 guarantees a fixed width of four digits.
	PinMin = 1000
	PinMax = 9999
)

// PinCode is the 4-digit delivery-confirmation secret shared with the courier
// and verified against the customer at handoff. The zero value is "no PIN"
// and is valid only for orders without an assigned courier.
type PinCode struct {
	code string
}

// NewRandomPinCode generates a PIN uniformly distributed in [1000, 9999],
// represented as a fixed-width 4-digit string.
func NewRandomPinCode() PinCode {
	n := rand.IntN(PinMax-PinMin+1) + PinMin //nolint:gosec // it's ok
	return PinCode{code: fmt.Sprintf("%04d", n)}
}

// PinCodeFromString reconstructs a PinCode from its stored representation.
// The empty string yields the zero PinCode; anything else must be exactly
// four digits in [1000, 9999].
func PinCodeFromString(s string) (PinCode, error) {
	if s == "" {
		return PinCode{}, nil
	}
	if len(s) != 4 {
		return PinCode{}, errs.NewValueIsInvalidErrorWithCause("pin code is invalid",
			fmt.Errorf("%q is not a 4-digit code", s))
	}

	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return PinCode{}, errs.NewValueIsInvalidErrorWithCause("pin code is invalid", err)
	}
	if n < PinMin || n > PinMax {
		return PinCode{}, errs.NewValueIsOutOfRangeError("pin code", n, PinMin, PinMax)
	}

	return PinCode{code: s}, nil
}

// String returns the 4-digit code, or the empty string for the zero value.
func (p PinCode) String() string {
	return p.code
}

// IsZero reports whether no PIN has been set.
func (p PinCode) IsZero() bool {
	return p.code == ""
}

// Matches compares a supplied code against the PIN using exact string
// equality. The zero PinCode matches nothing.
func (p PinCode) Matches(supplied string) bool {
	return !p.IsZero() && p.code == supplied
}
