package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CreateOrderFromCartCommandHandler handles the business logic for order
// creation: it builds a Pending order with a recomputed total, persists it,
// and only after the commit broadcasts orderCreated and statusChanged to
// the current subscribers.
//
// Example:
//
//	handler := NewCreateOrderFromCartCommandHandler(uowFactory, publisher)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderFromCartCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateOrderFromCartCommandHandler creates a handler for order creation.
// Requires an OrderUoWFactory for transactional persistence and an
// EventPublisher for the post-commit broadcast.
func NewCreateOrderFromCartCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) CreateOrderFromCartCommandHandler {
	return CreateOrderFromCartCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order creation command and returns the created
// order. Nothing is broadcast when persistence fails.
func (h CreateOrderFromCartCommandHandler) Handle(
	ctx context.Context,
	cmd CreateOrderFromCartCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(kernel.NewUUID(), cmd.CustomerID(), cmd.RestaurantID(), cmd.Lines())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx,
		order.NewSnapshotEvent(order.EventOrderCreated, newOrder),
		order.NewStatusChangedEvent(newOrder),
	)

	return newOrder, nil
}
