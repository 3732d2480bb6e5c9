package commands_test

import (
	"context"

	"visadesk/internal/core/application/usecases/commands"
	"visadesk/internal/core/domain/model/attachment"
	"visadesk/internal/core/domain/model/audit"
	"visadesk/internal/core/domain/model/catalogue"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/order"
	"visadesk/internal/core/ports"

	"github.com/stretchr/testify/mock"
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

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Exists(ctx context.Context, id kernel.ID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockAttachmentRepository struct{ mock.Mock }

func (m *MockAttachmentRepository) ReplaceAll(
	ctx context.Context,
	orderID kernel.ID,
	attachments []attachment.Attachment,
) error {
	args := m.Called(ctx, orderID, attachments)
	return args.Error(0)
}

type MockCatalogueRepository struct{ mock.Mock }

func (m *MockCatalogueRepository) FindTariffServices(
	ctx context.Context,
	ids []kernel.ID,
) (map[kernel.ID]catalogue.TariffService, error) {
	args := m.Called(ctx, ids)
	found, _ := args.Get(0).(map[kernel.ID]catalogue.TariffService)
	return found, args.Error(1)
}

type MockStatusNotifier struct{ mock.Mock }

func (m *MockStatusNotifier) NotifyOnOrderStatusUpdate(ctx context.Context, change ports.StatusChange) {
	m.Called(ctx, change)
}

// MockUoW satisfies both OrderUoW and OrderServicesUoW.
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

func (m *MockUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

func (m *MockUoW) AttachmentRepository() ports.AttachmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AttachmentRepository)
}

func (m *MockUoW) CatalogueRepository() ports.CatalogueRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogueRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderServicesUoWFactory struct{ mock.Mock }

func (m *MockOrderServicesUoWFactory) Create() commands.OrderServicesUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderServicesUoW)
}
