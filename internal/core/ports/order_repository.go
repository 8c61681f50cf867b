// Package ports defines repository and publisher interfaces for the order domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The store is the serialization point for concurrent lifecycle operations:
// each aggregate is read, validated, and written back within one unit of work.
type OrderRepository interface {
	// Add persists a new order aggregate together with its line items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Line items are immutable and are never rewritten; the receipt, if
	// present, is created at most once.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// its items and receipt. Returns an error unwrapping to
	// errs.ErrObjectNotFound when the id does not resolve.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllPendingUnpaidBefore retrieves unpaid orders still in PENDING
	// status created before the cutoff. Used by the payment session expiry
	// sweep to fail orders whose payment session will never complete.
	GetAllPendingUnpaidBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
