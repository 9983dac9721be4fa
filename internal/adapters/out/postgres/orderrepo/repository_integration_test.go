package orderrepo_test

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
	"ordermgmt/internal/core/domain/model/kernel"
	"ordermgmt/internal/core/domain/model/order"
	"ordermgmt/internal/pkg/errs"
)

// OrderRepositoryIntegrationTestSuite provides integration tests for
// GormOrderRepository using PostgreSQL containers to verify persistence and
// conditional-update behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	testOrder, err := order.NewOrder("ACME Corp", "Widget", decimal.NewFromFloat(19.99))
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(testOrder.ID().IsEqual(restored.ID()))
	suite.Equal("ACME Corp", restored.Customer())
	suite.Equal("Widget", restored.Product())
	suite.True(testOrder.Amount().Equal(restored.Amount()))
	suite.Equal(order.Submitted, restored.Status())
	suite.WithinDuration(testOrder.CreatedAt(), restored.CreatedAt(), time.Millisecond)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_UnknownID_ReturnsNotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)

	var notFound *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAll_ReturnsEveryOrder() {
	ctx := context.Background()

	first := suite.createTestOrder()
	second := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	orders, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Len(orders, 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ExistingOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.StartFulfillment())
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InFulfillment, restored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrder_ReturnsNotFound() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	err := suite.repository.Update(ctx, testOrder)
	suite.Require().Error(err)

	var notFound *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatusIf_ExpectedMatches_Applies() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	applied, err := suite.repository.UpdateStatusIf(
		ctx, testOrder.ID(), order.Submitted, order.InFulfillment,
	)
	suite.Require().NoError(err)
	suite.True(applied)

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InFulfillment, restored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatusIf_StaleExpected_NoWrite() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	applied, err := suite.repository.UpdateStatusIf(
		ctx, testOrder.ID(), order.Submitted, order.InFulfillment,
	)
	suite.Require().NoError(err)
	suite.Require().True(applied)

	// Second claim with the same expectation must lose.
	applied, err = suite.repository.UpdateStatusIf(
		ctx, testOrder.ID(), order.Submitted, order.InFulfillment,
	)
	suite.Require().NoError(err)
	suite.False(applied)

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InFulfillment, restored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatusIf_UnknownOrder_ReturnsNotFound() {
	ctx := context.Background()

	applied, err := suite.repository.UpdateStatusIf(
		ctx, kernel.NewUUID(), order.Submitted, order.InFulfillment,
	)
	suite.Require().Error(err)
	suite.False(applied)

	var notFound *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatusIf_FullLifecycle() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	applied, err := suite.repository.UpdateStatusIf(
		ctx, testOrder.ID(), order.Submitted, order.InFulfillment,
	)
	suite.Require().NoError(err)
	suite.Require().True(applied)

	applied, err = suite.repository.UpdateStatusIf(
		ctx, testOrder.ID(), order.InFulfillment, order.Finalized,
	)
	suite.Require().NoError(err)
	suite.Require().True(applied)

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Finalized, restored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_ExistingOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(suite.repository.Delete(ctx, testOrder.ID()))

	_, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().Error(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_UnknownOrder_ReturnsNotFound() {
	ctx := context.Background()

	err := suite.repository.Delete(ctx, kernel.NewUUID())
	suite.Require().Error(err)

	var notFound *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetSubmittedBefore_FiltersByStatusAndAge() {
	ctx := context.Background()

	oldSubmitted, err := order.RestoreOrder(
		kernel.NewUUID(), "ACME Corp", "Widget", decimal.NewFromInt(10),
		order.Submitted, time.Now().UTC().Add(-time.Hour),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, oldSubmitted))

	oldFinalized, err := order.RestoreOrder(
		kernel.NewUUID(), "Globex", "Gadget", decimal.NewFromInt(20),
		order.Finalized, time.Now().UTC().Add(-time.Hour),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, oldFinalized))

	freshSubmitted := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, freshSubmitted))

	orphans, err := suite.repository.GetSubmittedBefore(ctx, time.Now().UTC().Add(-time.Minute))
	suite.Require().NoError(err)
	suite.Require().Len(orphans, 1)
	suite.True(oldSubmitted.ID().IsEqual(orphans[0].ID()))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
