package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery_NoFilters(t *testing.T) {
	query, err := queries.NewListOrdersQuery("", nil)

	require.NoError(t, err)
	assert.NoError(t, query.Validate())
	assert.Empty(t, query.CustomerID())
	assert.Nil(t, query.RestaurantID())
}

func TestNewListOrdersQuery_WithFilters(t *testing.T) {
	restaurantID := kernel.NewUUID()

	query, err := queries.NewListOrdersQuery("customer-1", &restaurantID)

	require.NoError(t, err)
	assert.Equal(t, "customer-1", query.CustomerID())
	require.NotNil(t, query.RestaurantID())
	assert.Equal(t, restaurantID, *query.RestaurantID())
}

func TestNewListOrdersQuery_InvalidRestaurantID(t *testing.T) {
	_, err := queries.NewListOrdersQuery("", &kernel.UUID{})

	require.Error(t, err)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestListOrdersQuery_ValidateZeroValue(t *testing.T) {
	var query queries.ListOrdersQuery

	err := query.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrListOrdersQueryIsNotConstructed)
}
