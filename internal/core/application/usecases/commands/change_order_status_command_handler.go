package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ChangeOrderStatusCommandHandler orchestrates a status transition:
// serialize on the order, load, ask the aggregate to transition, persist,
// commit, then broadcast orderUpdated and statusChanged.
//
// The per-order lock is held through publication, so a concurrent
// conflicting transition on the same order observes the committed state
// and fails with order.ErrInvalidTransition, and subscribers receive the
// order's events in the order they were applied.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, publisher, locks)
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown order ID, nothing was broadcast
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // rejected by the transition table, nothing was persisted
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	locks      *OrderLocks
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	locks *OrderLocks,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		locks:      locks,
	}
}

// Handle processes the transition command and returns the updated order.
// Broadcast strictly follows a confirmed commit; a storage failure or a
// rejected transition produces no events.
func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	unlock := h.locks.Lock(cmd.OrderID())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ChangeStatus(cmd.Target()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx,
		order.NewSnapshotEvent(order.EventOrderUpdated, aggregate),
		order.NewStatusChangedEvent(aggregate),
	)

	return aggregate, nil
}
