package commands

import (
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
)

// OrderLocks serializes mutating operations per order ID. Every command
// handler that performs a read-modify-write on an order acquires the
// order's lock for the whole cycle, including event publication, so
// concurrent conflicting transitions resolve to exactly one winner and
// per-order event ordering is preserved. Operations on different orders
// proceed independently.
type OrderLocks struct {
	locks sync.Map // kernel.UUID -> *sync.Mutex
}

// NewOrderLocks creates an empty lock registry. One instance is shared by
// all command handlers of a composition root.
func NewOrderLocks() *OrderLocks {
	return &OrderLocks{}
}

// Lock acquires the mutex for the given order ID, creating it on first
// use, and returns the unlock function.
//
// Example:
//
//	unlock := locks.Lock(orderID)
//	defer unlock()
func (l *OrderLocks) Lock(id kernel.UUID) func() {
	v, _ := l.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
