package commands_test

import (
	"context"
	"testing"
	"time"

	"checkout/internal/core/application/addressing"
	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/delivery"
	"checkout/internal/core/domain/model/item"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
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

func (m *MockOrderRepository) GetByReference(ctx context.Context, ref payment.Reference) (*order.Order, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllNeedingFinalisation(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockItemRepository struct{ mock.Mock }

func (m *MockItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, it *item.Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
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

func (m *MockUoW) ItemRepository() ports.ItemRepository {
	args := m.Called()
	return args.Get(0).(ports.ItemRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockAddressLookup struct{ mock.Mock }

func (m *MockAddressLookup) Resolve(ctx context.Context, id kernel.UUID, role addressing.Role) (*kernel.Address, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kernel.Address), args.Error(1)
}

type MockEncryptor struct{ mock.Mock }

func (m *MockEncryptor) Encrypt(ctx context.Context, a kernel.Address) (string, error) {
	args := m.Called(ctx, a)
	return args.String(0), args.Error(1)
}

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func mustAddress(t *testing.T, city string) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(kernel.AddressFields{Street: "1 Main Road", City: city, Province: "Gauteng", PostalCode: "2000"})
	require.NoError(t, err)
	return a
}

func newItem(t *testing.T) *item.Item {
	t.Helper()
	it, err := item.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Vintage lamp", mustMoney(t, "250.00"), 1.5)
	require.NoError(t, err)
	return it
}

func newPayload(t *testing.T, it *item.Item) order.Payload {
	t.Helper()
	opt := delivery.Option{
		ID: "tcg-economy", CourierID: "tcg-economy", ServiceName: "Economy", ProviderName: "TCG",
		Price: mustMoney(t, "95.00"), EstimatedDays: 3, Zone: delivery.Provincial,
	}
	summary, err := order.NewSummary(it, opt, mustAddress(t, "Pretoria"), mustAddress(t, "Johannesburg"))
	require.NoError(t, err)
	return order.BuildPayload(summary, kernel.NewUUID(), payment.NewReference())
}

func newFallbackOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewFallbackOrder(kernel.NewUUID(), newPayload(t, newItem(t)), time.Now())
	require.NoError(t, err)
	return o
}
