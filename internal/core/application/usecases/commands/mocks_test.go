package commands_test

import (
	"context"
	"testing"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/principal"
	"production/internal/core/domain/model/stage"
	"production/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.WorkOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.WorkOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
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
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockHistoryRepository) All(ctx context.Context) ([]history.Record, error) {
	args := m.Called(ctx)
	return args.Get(0).([]history.Record), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
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
	args := m.Called(ctx, p, secret)
	return args.Error(0)
}

func (m *MockDirectory) RemovePrincipal(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

type MockObserver struct{ mock.Mock }

func (m *MockObserver) OrderCreated(ctx context.Context, o *order.WorkOrder) {
	m.Called(ctx, o)
}

func (m *MockObserver) OrderAdvanced(ctx context.Context, tr order.Transition) {
	m.Called(ctx, tr)
}

func testCatalog(t *testing.T) stage.Catalog {
	t.Helper()
	c, err := stage.NewCatalog("Queued", "Printing", "Shipped")
	require.NoError(t, err)
	return c
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
