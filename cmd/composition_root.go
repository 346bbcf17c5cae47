package cmd

import (
	"log/slog"

	"orderhub/internal/adapters/out/bus"
	"orderhub/internal/adapters/out/catalog"
	"orderhub/internal/adapters/out/postgres"
	"orderhub/internal/core/application/usecases/commands"
	"orderhub/internal/core/application/usecases/queries"
	"orderhub/internal/core/domain/services"
	"orderhub/internal/core/ports"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. One instance per
// process; handlers it creates are cheap and can be created per request.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	pricing    services.PricingService
	hub        *bus.Hub
	publisher  ports.EventPublisher
	catalog    *catalog.StaticCatalog
	closers    []func()
}

// NewCompositionRoot builds the object graph: the GORM unit of work factory,
// the pricing service, the in-process event hub and, when configured, the
// AMQP publisher fanned out alongside it.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	taxRate, err := decimal.NewFromString(config.TaxRate)
	if err != nil {
		return nil, err
	}
	pricing, err := services.NewPricingService(taxRate)
	if err != nil {
		return nil, err
	}

	hub := bus.NewHub(logger)

	root := &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		pricing:    pricing,
		hub:        hub,
		publisher:  hub,
		catalog:    catalog.NewStaticCatalog(),
	}
	root.closers = append(root.closers, hub.Close)

	if config.AmqpURL != "" {
		amqpPublisher, err := bus.NewAMQPPublisher(config.AmqpURL, config.AmqpExchange, logger)
		if err != nil {
			return nil, err
		}
		root.publisher = bus.NewFanoutPublisher(hub, amqpPublisher)
		root.closers = append(root.closers, func() { _ = amqpPublisher.Close() })
	}

	return root, nil
}

// Close releases the publishers. The database handle is owned by the caller.
func (c *CompositionRoot) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Hub exposes the in-process event bus for the SSE endpoint.
func (c *CompositionRoot) Hub() *bus.Hub {
	return c.hub
}

// Catalog exposes the menu catalog used to resolve cart lines.
func (c *CompositionRoot) Catalog() ports.MenuCatalog {
	return c.catalog
}

// StaticCatalog exposes the mutable catalog for seeding menu data.
func (c *CompositionRoot) StaticCatalog() *catalog.StaticCatalog {
	return c.catalog
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) requestUoWFactory() commands.RequestUoWFactory {
	return FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCheckoutOrderCommandHandler() commands.CheckoutOrderCommandHandler {
	return commands.NewCheckoutOrderCommandHandler(c.orderUoWFactory(), c.pricing, c.publisher)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreatePerformOrderActionCommandHandler() commands.PerformOrderActionCommandHandler {
	return commands.NewPerformOrderActionCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreatePurgeOrdersCommandHandler() commands.PurgeOrdersCommandHandler {
	return commands.NewPurgeOrdersCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCreateServiceRequestCommandHandler() commands.CreateServiceRequestCommandHandler {
	return commands.NewCreateServiceRequestCommandHandler(c.requestUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateResolveServiceRequestCommandHandler() commands.ResolveServiceRequestCommandHandler {
	return commands.NewResolveServiceRequestCommandHandler(c.requestUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCleanupServiceRequestsCommandHandler() commands.CleanupServiceRequestsCommandHandler {
	return commands.NewCleanupServiceRequestsCommandHandler(c.requestUoWFactory())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTableOrdersQueryHandler() queries.GetTableOrdersQueryHandler {
	return queries.NewGetTableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPendingServiceRequestsQueryHandler() queries.ListPendingServiceRequestsQueryHandler {
	return queries.NewListPendingServiceRequestsQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}
