package cmd

import (
	"log/slog"

	httpin "courierbot/internal/adapters/in/http"
	"courierbot/internal/adapters/out/catalogfile"
	"courierbot/internal/adapters/out/sessionstore"
	"courierbot/internal/core/application/concurrency"
	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/application/usecases/queries"
	"courierbot/internal/core/ports"
	"courierbot/internal/jobs"
)

type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	uowFactory ports.UnitOfWorkFactory
	publisher  ports.EventPublisher
	guard      *concurrency.Guard
	clock      ports.Clock
	sessions   *sessionstore.Store
	catalog    ports.CatalogProvider
	policy     commands.Policy
}

// NewCompositionRoot wires use cases over the chosen storage and notifier.
// Storage and broker connections are owned by the caller.
func NewCompositionRoot(
	cfg Config,
	uowFactory ports.UnitOfWorkFactory,
	publisher ports.EventPublisher,
	clock ports.Clock,
	logger *slog.Logger,
) *CompositionRoot {
	return &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		uowFactory: uowFactory,
		publisher:  publisher,
		guard:      concurrency.NewGuard(cfg.LockTimeout),
		clock:      clock,
		sessions:   sessionstore.New(),
		catalog:    catalogfile.NewLoader(cfg.CatalogPath, logger),
		policy: commands.Policy{
			MinOrderTotal:       cfg.MinOrderTotal,
			LargeOrderQuantity:  cfg.LargeOrderQuantity,
			DefaultBalanceLimit: cfg.DefaultBalanceLimit,
			AdminIDs:            cfg.AdminIDs,
			PrimaryAdminID:      cfg.PrimaryAdminID,
		},
	}
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	var f commands.SubmitUoWFactory = FuncSubmitUoWFactory(func() commands.SubmitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitOrderCommandHandler(f, c.guard, c.clock, c.publisher, c.policy)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.guard, c.clock, c.publisher, c.policy)
}

func (c *CompositionRoot) CreateDenyOrderCommandHandler() commands.DenyOrderCommandHandler {
	return commands.NewDenyOrderCommandHandler(c.orderUoWFactory(), c.guard, c.clock, c.publisher, c.policy)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.orderUoWFactory(), c.guard, c.clock, c.publisher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.guard, c.clock, c.publisher)
}

func (c *CompositionRoot) CreateNotifyLateDeliveriesCommandHandler() commands.NotifyLateDeliveriesCommandHandler {
	return commands.NewNotifyLateDeliveriesCommandHandler(c.orderUoWFactory(), c.clock, c.publisher)
}

func (c *CompositionRoot) CreateSetBalanceLimitCommandHandler() commands.SetBalanceLimitCommandHandler {
	return commands.NewSetBalanceLimitCommandHandler(c.settingsUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateSetOrderIntakeCommandHandler() commands.SetOrderIntakeCommandHandler {
	return commands.NewSetOrderIntakeCommandHandler(c.settingsUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateSetCourierActivityCommandHandler() commands.SetCourierActivityCommandHandler {
	var f commands.CourierActivityUoWFactory = FuncCourierActivityUoWFactory(func() commands.CourierActivityUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetCourierActivityCommandHandler(f, c.policy)
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	return commands.NewAddCartItemCommandHandler(c.sessions, c.catalog, c.guard)
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	return commands.NewClearCartCommandHandler(c.sessions, c.guard)
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	return commands.NewCheckoutCommandHandler(c.sessions, c.guard, c.CreateSubmitOrderCommandHandler())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderReaders(), c.clock)
}

func (c *CompositionRoot) CreateListOpenOrdersQueryHandler() queries.ListOpenOrdersQueryHandler {
	return queries.NewListOpenOrdersQueryHandler(c.orderReaders(), c.clock)
}

func (c *CompositionRoot) CreateFindOrdersByDeliveryNoQueryHandler() queries.FindOrdersByDeliveryNoQueryHandler {
	return queries.NewFindOrdersByDeliveryNoQueryHandler(c.orderReaders())
}

func (c *CompositionRoot) CreateGetBalanceInfoQueryHandler() queries.GetBalanceInfoQueryHandler {
	return queries.NewGetBalanceInfoQueryHandler(
		c.dispatchReaders(), c.clock, c.policy.DefaultBalanceLimit, c.policy.PrimaryAdminID,
	)
}

func (c *CompositionRoot) CreateListInactiveCouriersQueryHandler() queries.ListInactiveCouriersQueryHandler {
	return queries.NewListInactiveCouriersQueryHandler(c.dispatchReaders())
}

// CreateHTTPServer builds the HTTP adapter with every use case attached.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		SubmitOrder:        c.CreateSubmitOrderCommandHandler(),
		AcceptOrder:        c.CreateAcceptOrderCommandHandler(),
		DenyOrder:          c.CreateDenyOrderCommandHandler(),
		DeliverOrder:       c.CreateDeliverOrderCommandHandler(),
		CancelOrder:        c.CreateCancelOrderCommandHandler(),
		SetBalanceLimit:    c.CreateSetBalanceLimitCommandHandler(),
		SetOrderIntake:     c.CreateSetOrderIntakeCommandHandler(),
		SetCourierActivity: c.CreateSetCourierActivityCommandHandler(),
		AddCartItem:        c.CreateAddCartItemCommandHandler(),
		ClearCart:          c.CreateClearCartCommandHandler(),
		Checkout:           c.CreateCheckoutCommandHandler(),

		GetOrder:             c.CreateGetOrderQueryHandler(),
		ListOpenOrders:       c.CreateListOpenOrdersQueryHandler(),
		FindOrders:           c.CreateFindOrdersByDeliveryNoQueryHandler(),
		GetBalanceInfo:       c.CreateGetBalanceInfoQueryHandler(),
		ListInactiveCouriers: c.CreateListInactiveCouriersQueryHandler(),
	}, c.logger)
}

// CreateJobManager registers every scheduled job.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager().
		Add("late delivery", jobs.NewLateDeliveryJob(
			c.CreateNotifyLateDeliveriesCommandHandler(), c.cfg.LateDeliveryAfter, c.cfg.LateDeliverySchedule, c.logger,
		)).
		Add("balance report", jobs.NewBalanceReportJob(
			c.CreateGetBalanceInfoQueryHandler(), c.cfg.BalanceReportSchedule, c.logger,
		)).
		Add("session expiry", jobs.NewSessionExpiryJob(
			c.sessions, c.cfg.SessionIdleTimeout, c.cfg.SessionExpirySchedule, c.logger,
		))
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) settingsUoWFactory() commands.SettingsUoWFactory {
	return FuncSettingsUoWFactory(func() commands.SettingsUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderReaders() queries.OrderReaderFactory {
	return FuncOrderReaderFactory(func() queries.OrderReader {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) dispatchReaders() queries.DispatchReaderFactory {
	return FuncDispatchReaderFactory(func() queries.DispatchReader {
		return c.uowFactory.Create()
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSubmitUoWFactory func() commands.SubmitUoW

func (f FuncSubmitUoWFactory) Create() commands.SubmitUoW {
	return f()
}

type FuncSettingsUoWFactory func() commands.SettingsUoW

func (f FuncSettingsUoWFactory) Create() commands.SettingsUoW {
	return f()
}

type FuncCourierActivityUoWFactory func() commands.CourierActivityUoW

func (f FuncCourierActivityUoWFactory) Create() commands.CourierActivityUoW {
	return f()
}

type FuncOrderReaderFactory func() queries.OrderReader

func (f FuncOrderReaderFactory) Create() queries.OrderReader {
	return f()
}

type FuncDispatchReaderFactory func() queries.DispatchReader

func (f FuncDispatchReaderFactory) Create() queries.DispatchReader {
	return f()
}
