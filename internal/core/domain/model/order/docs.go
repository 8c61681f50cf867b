// Package order provides domain entities and business logic for the
// food-delivery order lifecycle. It implements the Order aggregate root with
// payment, courier, and state-machine behavior.
//
// The package includes:
//   - Order: the aggregate root managing identity, items, payment, and lifecycle
//   - Status: a state machine with a fixed transition table
//   - Item: immutable order lines created atomically with the order
//   - Receipt: the one-and-only payment receipt, created on confirmation
//   - PinCode: the 4-digit delivery-confirmation secret
//
// Key business rules:
//   - Status moves forward only along transition-table edges; DELIVERED,
//     CANCELLED, and FAILED are terminal
//   - Payment confirmation and cancellation/failure are deliberate overrides
//     that bypass the table but remain once-only where required
//   - Courier and PIN are set together, once; the PIN gates the DELIVERED
//     transition via exact match
//   - The total amount is computed at creation and never recomputed
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
