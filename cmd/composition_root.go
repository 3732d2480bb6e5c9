package cmd

import (
	httpadapter "visadesk/internal/adapters/in/http"
	"visadesk/internal/adapters/out/notify"
	"visadesk/internal/adapters/out/postgres"
	"visadesk/internal/core/application/usecases/commands"
	"visadesk/internal/core/application/usecases/queries"
	"visadesk/internal/core/domain/model/order"
	"visadesk/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	dispatcher *notify.AsyncDispatcher
}

// NewCompositionRoot wires the adapters. A nil redisClient makes
// notifications go to the log only.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, redisClient *redis.Client, log *zap.Logger) *CompositionRoot {
	var sender notify.Sender = notify.NewLogSender(logger.Component(log, "notify"))
	if redisClient != nil {
		sender = notify.NewRedisSender(redisClient, cfg.NotifyChannel, log)
	}

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     log,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, logger.Component(log, "postgres")),
		dispatcher: notify.NewAsyncDispatcher(sender, notify.Config{
			QueueSize:   cfg.NotifyQueueSize,
			Workers:     cfg.NotifyWorkers,
			SendTimeout: cfg.NotifySendTimeout,
		}, log),
	}
}

// Dispatcher is the notification dispatcher; its lifetime is owned by main.
func (c *CompositionRoot) Dispatcher() *notify.AsyncDispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) TransitionPolicy() order.TransitionPolicy {
	if c.cfg.OrdersStrictTransitions {
		return order.DefaultWorkflow()
	}
	return order.AnyTransition{}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() *commands.UpdateOrderCommandHandler {
	h := commands.NewUpdateOrderCommandHandler(c.orderUoWFactory(), c.dispatcher, c.TransitionPolicy())
	return &h
}

func (c *CompositionRoot) CreateArchiveOrderCommandHandler() *commands.ArchiveOrderCommandHandler {
	h := commands.NewArchiveOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderServicesCommandHandler() *commands.UpdateOrderServicesCommandHandler {
	var f commands.OrderServicesUoWFactory = FuncOrderServicesUoWFactory(func() commands.OrderServicesUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewUpdateOrderServicesCommandHandler(f, logger.Component(c.logger, "commands"))
	return &h
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.queryLogger())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB, c.queryLogger())
}

func (c *CompositionRoot) CreateGetOrderServicesQueryHandler() queries.GetOrderServicesQueryHandler {
	return queries.NewGetOrderServicesQueryHandler(c.gormDB, c.queryLogger())
}

func (c *CompositionRoot) CreateListAuditEntriesQueryHandler() queries.ListAuditEntriesQueryHandler {
	return queries.NewListAuditEntriesQueryHandler(c.gormDB, c.queryLogger())
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		UpdateOrder:         c.CreateUpdateOrderCommandHandler(),
		ArchiveOrder:        c.CreateArchiveOrderCommandHandler(),
		UpdateOrderServices: c.CreateUpdateOrderServicesCommandHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		ListOrders:          c.CreateListOrdersQueryHandler(),
		GetOrderServices:    c.CreateGetOrderServicesQueryHandler(),
		ListAuditEntries:    c.CreateListAuditEntriesQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) queryLogger() *zap.Logger {
	return logger.Component(c.logger, "queries")
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderServicesUoWFactory func() commands.OrderServicesUoW

func (f FuncOrderServicesUoWFactory) Create() commands.OrderServicesUoW {
	return f()
}
