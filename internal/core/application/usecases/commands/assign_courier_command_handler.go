package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// AssignCourierCommandHandler orchestrates courier assignment: serialize
// on the order, load, set the courier together with the Assigned status,
// persist, commit, then broadcast orderAssigned and statusChanged.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory, publisher, locks)
//	cmd, _ := NewAssignCourierCommand(orderID, courierID)
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidTransition) {
//	    // the order was not in Preparing
//	}
type AssignCourierCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	locks      *OrderLocks
}

// NewAssignCourierCommandHandler creates a handler for courier assignment.
func NewAssignCourierCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	locks *OrderLocks,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		locks:      locks,
	}
}

// Handle processes the assignment command and returns the updated order.
// Nothing is broadcast unless the commit succeeded.
func (h AssignCourierCommandHandler) Handle(
	ctx context.Context,
	cmd AssignCourierCommand,
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

	if err = aggregate.Assign(cmd.CourierID()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx,
		order.NewSnapshotEvent(order.EventOrderAssigned, aggregate),
		order.NewStatusChangedEvent(aggregate),
	)

	return aggregate, nil
}
