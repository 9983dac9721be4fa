package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ordermgmt/internal/adapters/out/postgres/orderrepo"
	"ordermgmt/internal/core/application/usecases/queries"
	"ordermgmt/internal/core/domain/model/kernel"
	"ordermgmt/internal/core/domain/model/order"
	"ordermgmt/internal/pkg/errs"
)

// QueryHandlersIntegrationTestSuite exercises the read-side handlers against
// a real PostgreSQL instance, seeding data through the repository.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container      *postgres.PostgresContainer
	db             *gorm.DB
	repository     *orderrepo.GormOrderRepository
	getAllHandler  queries.GetAllOrdersQueryHandler
	getByIDHandler queries.GetOrderQueryHandler
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	suite.repository = orderrepo.NewGormOrderRepository(db)
	suite.getAllHandler = queries.NewGetAllOrdersQueryHandler(db)
	suite.getByIDHandler = queries.NewGetOrderQueryHandler(db)
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) seedOrder(status order.Status, createdAt time.Time) *order.Order {
	seeded, err := order.RestoreOrder(
		kernel.NewUUID(), "ACME Corp", "Widget", decimal.NewFromFloat(19.99),
		status, createdAt,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), seeded))
	return seeded
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetAllOrders_Empty() {
	orders, err := suite.getAllHandler.Handle(context.Background(), queries.NewGetAllOrdersQuery())
	suite.Require().NoError(err)
	suite.Empty(orders)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetAllOrders_NewestFirst() {
	older := suite.seedOrder(order.Finalized, time.Now().UTC().Add(-time.Hour))
	newer := suite.seedOrder(order.Submitted, time.Now().UTC())

	orders, err := suite.getAllHandler.Handle(context.Background(), queries.NewGetAllOrdersQuery())
	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.True(newer.ID().IsEqual(orders[0].ID))
	suite.True(older.ID().IsEqual(orders[1].ID))
	suite.Equal("Submitted", orders[0].Status)
	suite.Equal("Finalized", orders[1].Status)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_Found() {
	seeded := suite.seedOrder(order.InFulfillment, time.Now().UTC())

	query, err := queries.NewGetOrderQuery(seeded.ID())
	suite.Require().NoError(err)

	resp, err := suite.getByIDHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.True(seeded.ID().IsEqual(resp.ID))
	suite.Equal("ACME Corp", resp.Customer)
	suite.Equal("Widget", resp.Product)
	suite.True(seeded.Amount().Equal(resp.Amount))
	suite.Equal("InFulfillment", resp.Status)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.getByIDHandler.Handle(context.Background(), query)
	suite.Require().Error(err)

	var notFound *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFound)
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
