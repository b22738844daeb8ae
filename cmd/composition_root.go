package cmd

import (
	"log/slog"
	"os"

	httpin "orderservice/internal/adapters/in/http"
	"orderservice/internal/adapters/in/stream"
	"orderservice/internal/adapters/out/catalog"
	"orderservice/internal/adapters/out/inmemory"
	"orderservice/internal/adapters/out/kafka"
	"orderservice/internal/adapters/out/postgres"
	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/application/usecases/queries"
	"orderservice/internal/core/ports"
	"orderservice/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters to use cases. With no Kafka host
// configured it falls back to an in-process event channel, which keeps
// local runs broker-free.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	bookClient ports.BookClient
	publisher  ports.OrderEventPublisher
	subscriber ports.OrderEventSubscriber
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) *CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	root := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		bookClient: catalog.NewClient(config.CatalogServiceURL, config.CatalogLookupTimeout, logger),
	}

	if config.KafkaHost != "" {
		root.publisher = kafka.NewPublisher(config.KafkaHost, logger)
		root.subscriber = kafka.NewSubscriber(config.KafkaHost, config.KafkaConsumerGroup)
	} else {
		channel := inmemory.NewChannel(1024)
		root.publisher = channel
		root.subscriber = channel
	}

	return root
}

// Logger exposes the root logger for process-level messages.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitOrderCommandHandler(f, c.bookClient, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOrderCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatsQueryHandler() queries.GetOrderStatsQueryHandler {
	return queries.NewGetOrderStatsQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the inbound HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateSubmitOrderCommandHandler(),
		c.CreateGetAllOrdersQueryHandler(),
	)
}

// CreateDispatchConsumer assembles the order-dispatched channel consumer.
func (c *CompositionRoot) CreateDispatchConsumer() *stream.DispatchConsumer {
	handler := c.CreateDispatchOrderCommandHandler()
	return stream.NewDispatchConsumer(c.subscriber, &handler, c.config.ConsumerMaxInFlight, c.logger)
}

// CreateJobManager assembles the scheduled background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetOrderStatsQueryHandler(), c.logger)
}

// CloseSubscriber terminates the channel subscription during shutdown.
func (c *CompositionRoot) CloseSubscriber() error {
	return c.subscriber.Close()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
