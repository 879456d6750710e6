package queries_test

import (
	"context"
	"testing"
	"time"

	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/principal"
	"production/internal/core/domain/model/stage"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.WorkOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.WorkOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.WorkOrder, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.WorkOrder); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]*order.WorkOrder, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*order.WorkOrder), args.Error(1)
}

func (m *MockOrderRepository) ListInStage(ctx context.Context, s stage.Stage) ([]*order.WorkOrder, error) {
	args := m.Called(ctx, s)
	return args.Get(0).([]*order.WorkOrder), args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Append(ctx context.Context, r history.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockHistoryRepository) All(ctx context.Context) ([]history.Record, error) {
	args := m.Called(ctx)
	return args.Get(0).([]history.Record), args.Error(1)
}

type MockDirectory struct{ mock.Mock }

func (m *MockDirectory) Authenticate(ctx context.Context, username, secret string) (principal.Principal, error) {
	args := m.Called(ctx, username, secret)
	return args.Get(0).(principal.Principal), args.Error(1)
}

func (m *MockDirectory) Get(ctx context.Context, username string) (principal.Principal, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(principal.Principal), args.Error(1)
}

func (m *MockDirectory) ListPrincipals(ctx context.Context) ([]principal.Principal, error) {
	args := m.Called(ctx)
	return args.Get(0).([]principal.Principal), args.Error(1)
}

func (m *MockDirectory) CreatePrincipal(ctx context.Context, p principal.Principal, secret string) error {
	return m.Called(ctx, p, secret).Error(0)
}

func (m *MockDirectory) UpsertPrincipal(ctx context.Context, p principal.Principal, secret string) error {
	return m.Called(ctx, p, secret).Error(0)
}

func (m *MockDirectory) RemovePrincipal(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func testCatalog(t *testing.T) stage.Catalog {
	t.Helper()
	c, err := stage.NewCatalog("Queued", "Printing", "Shipped")
	require.NoError(t, err)
	return c
}

func newOrder(t *testing.T, number, client string, names ...string) *order.WorkOrder {
	t.Helper()
	catalog := testCatalog(t)
	plan, err := catalog.ParsePlan(names)
	require.NoError(t, err)
	o, err := order.NewWorkOrder(kernel.NewUUID(), number, client, plan, catalog, t0)
	require.NoError(t, err)
	return o
}

func coordinator(t *testing.T) principal.Principal {
	t.Helper()
	p, err := principal.NewCoordinator("ana")
	require.NoError(t, err)
	return p
}

func planner(t *testing.T) principal.Principal {
	t.Helper()
	p, err := principal.NewPlanner("pablo")
	require.NoError(t, err)
	return p
}

func operator(t *testing.T, s stage.Stage) principal.Principal {
	t.Helper()
	p, err := principal.NewOperator("olga", s)
	require.NoError(t, err)
	return p
}
