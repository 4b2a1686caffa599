// Package ports defines the contracts between the application core and its
// adapters: persistence on the way out, event publication toward live
// subscribers.
package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// It is the sole persistence boundary of the core; retries and backoff
// around transient storage failures belong to the implementation.
type OrderRepository interface {
	// Add persists a new order aggregate with its line snapshots.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. Lines are
	// immutable after creation, so only the order row changes.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier,
	// including its line snapshots. Returns errs.ObjectNotFoundError
	// when the ID is unknown.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetStalePending retrieves orders still in Pending status that were
	// created before the cutoff. Used by the stale-order cancellation job.
	GetStalePending(ctx context.Context, olderThan time.Time) ([]*order.Order, error)
}
