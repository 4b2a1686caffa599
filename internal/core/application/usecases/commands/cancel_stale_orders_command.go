package commands

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrCancelStaleOrdersCommandIsNotConstructed = errors.New(
		"CancelStaleOrdersCommand must be created via NewCancelStaleOrdersCommand constructor",
	)
	ErrMaxPendingAgeIsInvalid = errors.New("maxPendingAge must be greater than 0")
)

// CancelStaleOrdersCommand triggers cancellation of orders that have been
// sitting in Pending longer than the given age. Issued periodically by the
// stale-order job.
//
// Example:
//
//	cmd, _ := NewCancelStaleOrdersCommand(30 * time.Minute)
//	cancelled, err := handler.Handle(ctx, cmd)
type CancelStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	maxPendingAge time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStaleOrdersCommand creates a command to cancel stale orders.
// The age must be positive.
func NewCancelStaleOrdersCommand(maxPendingAge time.Duration) (CancelStaleOrdersCommand, error) {
	cmd := CancelStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setMaxPendingAge(maxPendingAge); err != nil {
		return CancelStaleOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
}

// MaxPendingAge returns how long an order may stay Pending before it is
// considered stale.
func (c CancelStaleOrdersCommand) MaxPendingAge() time.Duration {
	return c.maxPendingAge
}

func (c *CancelStaleOrdersCommand) setMaxPendingAge(maxPendingAge time.Duration) error {
	if maxPendingAge <= 0 {
		return fmt.Errorf("%w: got %s", ErrMaxPendingAgeIsInvalid, maxPendingAge)
	}

	c.maxPendingAge = maxPendingAge
	return nil
}
