package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// CancelStaleOrdersCommandHandler cancels orders stuck in Pending. It
// reads the stale set, then funnels each cancellation through the regular
// status-transition handler, so stale orders are serialized, persisted,
// and broadcast exactly like customer-initiated cancellations.
//
// An order that was accepted or cancelled between the read and the
// cancellation attempt simply loses the race and is skipped.
type CancelStaleOrdersCommandHandler struct {
	uowFactory   OrderUoWFactory
	changeStatus ChangeOrderStatusCommandHandler
}

// NewCancelStaleOrdersCommandHandler creates a handler for stale-order
// cancellation.
func NewCancelStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	changeStatus ChangeOrderStatusCommandHandler,
) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory:   uowFactory,
		changeStatus: changeStatus,
	}
}

// Handle cancels every order Pending longer than the command's age and
// returns how many were cancelled.
func (h CancelStaleOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd CancelStaleOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	cutoff := time.Now().UTC().Add(-cmd.MaxPendingAge())

	stale, err := uow.OrderRepository().GetStalePending(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, aggregate := range stale {
		cancelCmd, cmdErr := NewChangeOrderStatusCommand(aggregate.ID(), order.Cancelled)
		if cmdErr != nil {
			return cancelled, cmdErr
		}

		_, handleErr := h.changeStatus.Handle(ctx, cancelCmd)
		switch {
		case handleErr == nil:
			cancelled++
		case errors.Is(handleErr, order.ErrInvalidTransition),
			errors.Is(handleErr, errs.ErrObjectNotFound):
			// Lost the race to a concurrent transition; skip.
		default:
			return cancelled, handleErr
		}
	}

	return cancelled, nil
}
