package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetStalePending(ctx context.Context, olderThan time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// MockEventPublisher records every published event so tests can assert
// both what was broadcast and that nothing was.
type MockEventPublisher struct {
	mock.Mock
	events []order.Event
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...order.Event) {
	m.Called(ctx, events)
	m.events = append(m.events, events...)
}

func (m *MockEventPublisher) EventNames() []string {
	names := make([]string, 0, len(m.events))
	for _, e := range m.events {
		names = append(names, e.Name)
	}
	return names
}

func testLines(t *testing.T) []order.Line {
	t.Helper()

	pizza, err := order.NewLine(kernel.NewUUID(), "Pizza muzzarella", 6500, 1)
	require.NoError(t, err)
	empanada, err := order.NewLine(kernel.NewUUID(), "Empanada de carne", 1200, 2)
	require.NoError(t, err)

	return []order.Line{pizza, empanada}
}

func testPendingOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), "customer-1", kernel.NewUUID(), testLines(t))
	require.NoError(t, err)
	return o
}

func testOrderInStatus(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	o := testPendingOrder(t)
	switch status {
	case order.Pending:
	case order.Preparing:
		require.NoError(t, o.ChangeStatus(order.Preparing))
	case order.Assigned:
		require.NoError(t, o.ChangeStatus(order.Preparing))
		require.NoError(t, o.Assign(kernel.NewUUID()))
	case order.OnTheWay:
		require.NoError(t, o.ChangeStatus(order.Preparing))
		require.NoError(t, o.Assign(kernel.NewUUID()))
		require.NoError(t, o.ChangeStatus(order.OnTheWay))
	case order.Delivered:
		require.NoError(t, o.ChangeStatus(order.Preparing))
		require.NoError(t, o.Assign(kernel.NewUUID()))
		require.NoError(t, o.ChangeStatus(order.OnTheWay))
		require.NoError(t, o.ChangeStatus(order.Delivered))
	case order.Cancelled:
		require.NoError(t, o.ChangeStatus(order.Cancelled))
	default:
		t.Fatalf("unsupported status %s", status)
	}

	return o
}
