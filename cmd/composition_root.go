package cmd

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/redisx"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/notifications"

	"gorm.io/gorm"
)

// DefaultStalePendingMaxAge is applied when the config does not set a
// parseable age.
const DefaultStalePendingMaxAge = 30 * time.Minute

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	hub        *notifications.Hub
	publisher  ports.EventPublisher
	locks      *commands.OrderLocks
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	hub := notifications.NewHub(logger, notifications.DefaultBufferSize)

	// The hub serves this instance's subscribers; the Redis bridge, when
	// configured, relays the same events to the other instances.
	var publisher ports.EventPublisher = hub
	if config.RedisAddr != "" {
		bridge := redisx.NewEventBridge(redisx.New(config.RedisAddr), config.EventsChannel, logger)
		publisher = multiEventPublisher{hub, bridge}
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        hub,
		publisher:  publisher,
		locks:      commands.NewOrderLocks(),
		logger:     logger,
	}
}

// Hub exposes the connection registry for the SSE adapter.
func (c *CompositionRoot) Hub() *notifications.Hub {
	return c.hub
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderFromCartCommandHandler() commands.CreateOrderFromCartCommandHandler {
	return commands.NewCreateOrderFromCartCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.publisher, c.locks)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.orderUoWFactory(), c.publisher, c.locks)
}

func (c *CompositionRoot) CreateCancelStaleOrdersCommandHandler() commands.CancelStaleOrdersCommandHandler {
	return commands.NewCancelStaleOrdersCommandHandler(
		c.orderUoWFactory(),
		c.CreateChangeOrderStatusCommandHandler(),
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

// StalePendingMaxAge parses the configured age, falling back to the
// default on absence or parse failure.
func (c *CompositionRoot) StalePendingMaxAge(config Config) time.Duration {
	if config.StalePendingMaxAge == "" {
		return DefaultStalePendingMaxAge
	}

	age, err := time.ParseDuration(config.StalePendingMaxAge)
	if err != nil || age <= 0 {
		c.logger.Warn("invalid STALE_PENDING_MAX_AGE, using default",
			slog.String("value", config.StalePendingMaxAge))
		return DefaultStalePendingMaxAge
	}

	return age
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// multiEventPublisher fans every publish out to all wrapped publishers
// in order.
type multiEventPublisher []ports.EventPublisher

func (m multiEventPublisher) Publish(ctx context.Context, events ...order.Event) {
	for _, publisher := range m {
		publisher.Publish(ctx, events...)
	}
}
