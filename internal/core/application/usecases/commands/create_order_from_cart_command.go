package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderFromCartCommandIsNotConstructed = errors.New(
		"CreateOrderFromCartCommand must be created via NewCreateOrderFromCartCommand constructor",
	)

	// ErrEmptyCart rejects order creation with zero lines. Detected before
	// any persistence write.
	ErrEmptyCart = errors.New("cart must contain at least one line")

	ErrCustomerIDIsRequired = errors.New("customerID is required")
)

// CreateOrderFromCartCommand represents a request to create an order from a
// customer's cart. It carries already-validated line snapshots so menu
// catalog changes after this point cannot affect the order.
//
// Example:
//
//	line, _ := order.NewLine(menuItemID, "Muzzarella", 6500, 1)
//	cmd, err := NewCreateOrderFromCartCommand("customer-1", restaurantID, []order.Line{line})
//	if err != nil {
//	    return fmt.Errorf("invalid cart: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderFromCartCommand struct { //nolint:recvcheck //using for validation
	customerID   string
	restaurantID kernel.UUID
	lines        []order.Line

	guard guard.ConstructorGuard
}

// NewCreateOrderFromCartCommand creates a command to place an order.
// Validates that the customer ID is present, the restaurant ID is valid,
// and the cart holds at least one constructed line.
func NewCreateOrderFromCartCommand(
	customerID string,
	restaurantID kernel.UUID,
	lines []order.Line,
) (CreateOrderFromCartCommand, error) {
	cmd := CreateOrderFromCartCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderFromCartCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderFromCartCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderFromCartCommandIsNotConstructed)
}

// CustomerID returns the identifier of the ordering customer.
func (c CreateOrderFromCartCommand) CustomerID() string {
	return c.customerID
}

// RestaurantID returns the identifier of the restaurant.
func (c CreateOrderFromCartCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Lines returns the cart line snapshots.
func (c CreateOrderFromCartCommand) Lines() []order.Line {
	return c.lines
}

func (c *CreateOrderFromCartCommand) setCustomerID(customerID string) error {
	if customerID == "" {
		return ErrCustomerIDIsRequired
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderFromCartCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderFromCartCommand) setLines(lines []order.Line) error {
	if len(lines) == 0 {
		return ErrEmptyCart
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	c.lines = lines
	return nil
}
