package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel error for status transitions that are
// not present in the transition table. Use errors.Is to classify, and
// errors.As with *InvalidTransitionError to inspect the offending statuses.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with a fixed transition table to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	PENDING ──┬──> CONFIRMED ──┬──> PREPARING ──> READY_FOR_DELIVERY ──> OUT_FOR_DELIVERY ──┬──> DELIVERED
//	          ├──> CANCELLED   └──> CANCELLED                                               └──> FAILED
//	          └──> FAILED
//
// DELIVERED, CANCELLED, and FAILED are terminal: no outgoing transitions.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and event payloads.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly created, unpaid order.
	Pending

	// Confirmed indicates payment has been confirmed for the order.
	Confirmed

	// Preparing indicates the restaurant has started preparing the order.
	Preparing

	// ReadyForDelivery indicates the order is packed and awaiting pickup.
	ReadyForDelivery

	// OutForDelivery indicates a courier is carrying the order to the customer.
	OutForDelivery

	// Delivered indicates the order was handed over to the customer.
	// This is a terminal state.
	Delivered

	// Cancelled indicates the order was cancelled before completion.
	// This is a terminal state.
	Cancelled

	// Failed indicates the order failed, e.g. on payment timeout or a
	// delivery problem. This is a terminal state.
	Failed
)

// getStatusStrings returns a map of Status values to their wire names.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "UNKNOWN",
		Pending:          "PENDING",
		Confirmed:        "CONFIRMED",
		Preparing:        "PREPARING",
		ReadyForDelivery: "READY_FOR_DELIVERY",
		OutForDelivery:   "OUT_FOR_DELIVERY",
		Delivered:        "DELIVERED",
		Cancelled:        "CANCELLED",
		Failed:           "FAILED",
	}
}

// getTransitionTable returns the fixed adjacency map of legal status
// transitions. The table is static configuration: it is rebuilt on each call
// so callers can never mutate shared state.
func getTransitionTable() map[Status][]Status {
	return map[Status][]Status{
		Pending:          {Confirmed, Cancelled, Failed},
		Confirmed:        {Preparing, Cancelled},
		Preparing:        {ReadyForDelivery},
		ReadyForDelivery: {OutForDelivery},
		OutForDelivery:   {Delivered, Failed},
	}
}

// StatusFromString parses a wire name ("PENDING", "CONFIRMED", ...) into a
// Status. Returns an error for unrecognized names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status has no outgoing transitions.
// Terminal statuses are DELIVERED, CANCELLED, and FAILED.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Failed
}

// CanTransitionTo reports whether the transition table contains an edge from
// the current status to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getTransitionTable()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo moves the status along an edge of the transition table.
//
// Returns:
//   - (target, nil) when the edge exists
//   - (0, *InvalidTransitionError) when it does not; the error names both
//     the current and the requested status
//
// A retried transition fails here because the edge no longer exists from the
// new current status. Callers decide whether that means "already applied".
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(target) {
		return 0, &InvalidTransitionError{From: s, To: target}
	}
	return target, nil
}

// InvalidTransitionError reports a status transition that is not in the
// transition table. It carries both the current and the requested status.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot move order from %s to %s", ErrInvalidTransition, e.From, e.To)
}

// Unwrap returns the ErrInvalidTransition sentinel for errors.Is support.
func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
