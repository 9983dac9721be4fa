package cmd

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"ordermgmt/internal/adapters/out/postgres/orderrepo"
	"ordermgmt/internal/adapters/out/redisstore"
	"ordermgmt/internal/adapters/rabbitmq"
	"ordermgmt/internal/core/application/usecases/commands"
	"ordermgmt/internal/core/application/usecases/queries"
	"ordermgmt/internal/jobs"
)

// CompositionRoot builds the application object graph from the shared
// infrastructure handles. Handler constructors are cheap, so each Create*
// call returns a fresh value.
type CompositionRoot struct {
	config   Config
	gormDB   *gorm.DB
	mqClient *rabbitmq.Client
	redis    *redis.Client
	logger   *slog.Logger
}

// NewCompositionRoot wires the composition root. Any infrastructure handle a
// binary does not need may be nil, as long as the corresponding Create*
// methods are never called.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	mqClient *rabbitmq.Client,
	redisClient *redis.Client,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:   config,
		gormDB:   gormDB,
		mqClient: mqClient,
		redis:    redisClient,
		logger:   logger,
	}
}

// OrderRepository returns the postgres-backed order repository.
func (c *CompositionRoot) OrderRepository() *orderrepo.GormOrderRepository {
	return orderrepo.NewGormOrderRepository(c.gormDB)
}

// EnvelopePublisher returns the broker publisher for fulfillment envelopes.
func (c *CompositionRoot) EnvelopePublisher() *rabbitmq.EnvelopePublisher {
	return rabbitmq.NewEnvelopePublisher(c.mqClient, c.logger)
}

// ProcessedEnvelopeStore returns the redis-backed redelivery cache.
func (c *CompositionRoot) ProcessedEnvelopeStore() *redisstore.ProcessedEnvelopeStore {
	return redisstore.NewProcessedEnvelopeStore(c.redis, c.config.ProcessedTTL)
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.OrderRepository(), c.EnvelopePublisher())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.OrderRepository())
}

func (c *CompositionRoot) CreateFulfillOrderCommandHandler() commands.FulfillOrderCommandHandler {
	return commands.NewFulfillOrderCommandHandler(
		c.OrderRepository(),
		c.ProcessedEnvelopeStore(),
		commands.SleepWithContext,
		c.config.ProcessingDelay,
		c.logger,
	)
}

func (c *CompositionRoot) CreateRepublishOrphansCommandHandler() commands.RepublishOrphansCommandHandler {
	return commands.NewRepublishOrphansCommandHandler(
		c.OrderRepository(),
		c.EnvelopePublisher(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

// CreateJobManager wires the background jobs for the API process.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRepublishOrphansCommandHandler(),
		c.config.OrphanSweepSchedule,
		c.config.OrphanMinAge,
		c.logger,
	)
}

// CreateConsumer wires the fulfillment consumer for the worker process.
func (c *CompositionRoot) CreateConsumer() *rabbitmq.Consumer {
	handler := c.CreateFulfillOrderCommandHandler()
	return rabbitmq.NewConsumer(
		c.mqClient,
		&handler,
		c.config.ConsumerPrefetch,
		c.config.WorkerPoolSize,
		c.logger,
	)
}
