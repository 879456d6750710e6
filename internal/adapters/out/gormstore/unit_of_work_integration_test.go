package gormstore_test

import (
	"context"
	"testing"
	"time"

	"production/internal/adapters/out/gormstore"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work against a real
// PostgreSQL started with testcontainers.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
	catalog   stage.Catalog
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(gormstore.Migrate(db))

	suite.factory = gormstore.NewGormUnitOfWorkFactory(db)
	suite.catalog, err = stage.NewCatalog("Queued", "Printing", "Shipped")
	suite.Require().NoError(err)
}

// SetupTest truncates every table so tests do not see each other's rows.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE work_orders, work_order_stages, history_records, principals").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

// TestUnitOfWork_AdvanceIsAtomic commits the order update and its history
// record together.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_AdvanceIsAtomic() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	tr, err := loaded.Advance(o.CreatedAt().Add(45 * time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.HistoryRepository().Append(ctx, tr.Record))
	suite.Require().NoError(uow.Commit(ctx))

	fresh := suite.factory.Create()
	got, err := fresh.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(stage.Stage("Printing"), got.CurrentStage())
	suite.Equal(2, got.Version())

	records, err := fresh.HistoryRepository().All(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(records, 1)
	suite.Equal(45*time.Minute, records[0].Duration())
}

// TestUnitOfWork_RollbackDiscardsBoth leaves neither the order change nor
// the history record behind.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsBoth() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	tr, err := o.Advance(o.CreatedAt().Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.HistoryRepository().Append(ctx, tr.Record))
	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()
	got, err := fresh.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(stage.Stage("Queued"), got.CurrentStage())
	suite.Equal(1, got.Version())

	records, err := fresh.HistoryRepository().All(ctx)
	suite.Require().NoError(err)
	suite.Empty(records)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	order1 := suite.newOrder()
	order2 := suite.newOrder()

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "uncommitted order2 is invisible to uow1")
	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "uncommitted order1 is invisible to uow2")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err)
	_, err = fresh.OrderRepository().Get(ctx, order2.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestUnitOfWork_StaleUpdateFails covers two operations that loaded the same
// version; the second commit attempt is rejected.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_StaleUpdateFails() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	stale, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	_, err = o.Advance(o.CreatedAt().Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Update(ctx, o))

	_, err = stale.Advance(o.CreatedAt().Add(2 * time.Minute))
	suite.Require().NoError(err)
	err = suite.factory.Create().OrderRepository().Update(ctx, stale)
	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.WorkOrder {
	plan, err := suite.catalog.ParsePlan([]string{"Queued", "Printing", "Shipped"})
	suite.Require().NoError(err)

	created := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	o, err := order.NewWorkOrder(kernel.NewUUID(), "OP-1", "Acme", plan, suite.catalog, created)
	suite.Require().NoError(err)
	return o
}

func TestUnitOfWorkIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
