package commands_test

import (
	"context"
	"testing"
	"time"

	"orderhub/internal/core/application/usecases/commands"
	"orderhub/internal/core/domain/model/audit"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/domain/model/servicerequest"
	"orderhub/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, observed order.Status) error {
	args := m.Called(ctx, o, observed)
	return args.Error(0)
}
func (m *MockOrderRepository) GetIDsCreatedOn(ctx context.Context, day time.Time) ([]kernel.UUID, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}
func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockServiceRequestRepository struct{ mock.Mock }

func (m *MockServiceRequestRepository) Add(ctx context.Context, r *servicerequest.ServiceRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockServiceRequestRepository) Get(ctx context.Context, id kernel.UUID) (*servicerequest.ServiceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*servicerequest.ServiceRequest), args.Error(1)
}
func (m *MockServiceRequestRepository) GetPending(ctx context.Context, tableNumber int, requestType servicerequest.Type) (*servicerequest.ServiceRequest, error) {
	args := m.Called(ctx, tableNumber, requestType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*servicerequest.ServiceRequest), args.Error(1)
}
func (m *MockServiceRequestRepository) Update(ctx context.Context, r *servicerequest.ServiceRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockServiceRequestRepository) DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, entry audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockOrderUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockRequestUoW struct{ mock.Mock }

func (m *MockRequestUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockRequestUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockRequestUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockRequestUoW) ServiceRequestRepository() ports.ServiceRequestRepository {
	args := m.Called()
	return args.Get(0).(ports.ServiceRequestRepository)
}
func (m *MockRequestUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockRequestUoWFactory struct{ mock.Mock }

func (m *MockRequestUoWFactory) Create() commands.RequestUoW {
	args := m.Called()
	return args.Get(0).(commands.RequestUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.Event) {
	m.Called(ctx, event)
}

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

// restoredOrder builds a dine-in order in the given status for handler tests.
func restoredOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	unit := money(t, "50.00")
	item, err := order.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), "Burger", 2, unit, nil, "", money(t, "100.00"),
	)
	require.NoError(t, err)

	table := 7
	now := time.Now().UTC()
	o, err := order.RestoreOrder(
		kernel.NewUUID(),
		42,
		status,
		order.DineIn,
		order.PayCard,
		&table,
		nil,
		order.Customer{Name: "Ada"},
		[]order.Item{item},
		order.Totals{
			Subtotal: money(t, "100.00"),
			Tax:      money(t, "8.00"),
			Total:    money(t, "108.00"),
		},
		order.NewVerificationCode(),
		nil,
		false,
		now,
		now,
	)
	require.NoError(t, err)
	return o
}
