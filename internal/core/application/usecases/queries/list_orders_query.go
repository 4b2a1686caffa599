package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves orders, newest first, optionally narrowed to
// one customer or one restaurant. Both filters empty means all orders.
//
// Example:
//
//	query, err := NewListOrdersQuery("customer-1", nil)
//	if err != nil {
//	    return err
//	}
//	responses, err := handler.Handle(ctx, query)
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	customerID   string
	restaurantID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query to list orders. An empty customerID
// and a nil restaurantID disable the respective filter.
func NewListOrdersQuery(customerID string, restaurantID *kernel.UUID) (ListOrdersQuery, error) {
	query := ListOrdersQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}

	if err := query.setRestaurantID(restaurantID); err != nil {
		return ListOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// CustomerID returns the customer filter, empty when unfiltered.
func (q ListOrdersQuery) CustomerID() string {
	return q.customerID
}

// RestaurantID returns the restaurant filter, nil when unfiltered.
func (q ListOrdersQuery) RestaurantID() *kernel.UUID {
	return q.restaurantID
}

func (q *ListOrdersQuery) setRestaurantID(restaurantID *kernel.UUID) error {
	if restaurantID != nil {
		if err := restaurantID.Validate(); err != nil {
			return err
		}
	}

	q.restaurantID = restaurantID
	return nil
}
