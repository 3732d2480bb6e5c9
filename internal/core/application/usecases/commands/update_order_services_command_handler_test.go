package commands_test

import (
	"errors"
	"testing"

	"visadesk/internal/core/application/usecases/commands"
	"visadesk/internal/core/domain/model/attachment"
	"visadesk/internal/core/domain/model/catalogue"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func tariffService(t *testing.T, id, serviceID kernel.ID, price, tax string) catalogue.TariffService {
	t.Helper()
	ts, err := catalogue.NewTariffService(id, serviceID, kernel.ID(1),
		decimal.RequireFromString(price), decimal.RequireFromString(tax))
	require.NoError(t, err)
	return ts
}

func TestUpdateOrderServicesCommandHandler_FreezesResolvedPrices(t *testing.T) {
	ctx := t.Context()
	ids := []int64{12, 99, 15, 12}
	cmd, err := commands.NewUpdateOrderServicesCommand(kernel.ID(5), &ids)
	require.NoError(t, err)
	assert.Equal(t, []kernel.ID{12, 99, 15}, cmd.TariffServiceIDs())

	found := map[kernel.ID]catalogue.TariffService{
		12: tariffService(t, 12, 100, "100", "0.1"),
		15: tariffService(t, 15, 101, "20", "0"),
	}

	orderRepo := new(MockOrderRepository)
	catalogueRepo := new(MockCatalogueRepository)
	attachmentRepo := new(MockAttachmentRepository)
	uow := new(MockUoW)
	var stored []attachment.Attachment
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Exists", ctx, kernel.ID(5)).Return(true, nil).Once(),
		uow.On("CatalogueRepository").Return(catalogueRepo).Once(),
		catalogueRepo.On("FindTariffServices", ctx, []kernel.ID{12, 99, 15}).Return(found, nil).Once(),
		uow.On("AttachmentRepository").Return(attachmentRepo).Once(),
		attachmentRepo.On("ReplaceAll", ctx, kernel.ID(5), mock.Anything).
			Run(func(args mock.Arguments) { stored = args.Get(2).([]attachment.Attachment) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderServicesUoWFactory)
	factory.On("Create").Return(uow).Once()

	core, logs := observer.New(zapcore.WarnLevel)
	h := commands.NewUpdateOrderServicesCommandHandler(factory, zap.New(core))
	require.NoError(t, h.Handle(ctx, cmd))

	require.Len(t, stored, 2)
	assert.Equal(t, kernel.ID(100), stored[0].ServiceID())
	assert.True(t, decimal.NewFromInt(110).Equal(stored[0].Pricing().Total()))
	assert.Equal(t, kernel.ID(101), stored[1].ServiceID())
	assert.True(t, decimal.NewFromInt(20).Equal(stored[1].Pricing().Total()))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, int64(99), logs.All()[0].ContextMap()["tariff_service_id"])
	uow.AssertExpectations(t)
}

func TestUpdateOrderServicesCommandHandler_NilIsNoop(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewUpdateOrderServicesCommand(kernel.ID(5), nil)
	require.NoError(t, err)
	assert.False(t, cmd.Replace())

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Exists", ctx, kernel.ID(5)).Return(true, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderServicesUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderServicesCommandHandler(factory, zap.NewNop())
	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertNotCalled(t, "AttachmentRepository")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestUpdateOrderServicesCommandHandler_EmptyDetachesEverything(t *testing.T) {
	ctx := t.Context()
	ids := []int64{}
	cmd, err := commands.NewUpdateOrderServicesCommand(kernel.ID(5), &ids)
	require.NoError(t, err)
	assert.True(t, cmd.Replace())

	orderRepo := new(MockOrderRepository)
	attachmentRepo := new(MockAttachmentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Exists", ctx, kernel.ID(5)).Return(true, nil).Once(),
		uow.On("AttachmentRepository").Return(attachmentRepo).Once(),
		attachmentRepo.On("ReplaceAll", ctx, kernel.ID(5), mock.MatchedBy(func(a []attachment.Attachment) bool {
			return len(a) == 0
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderServicesUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderServicesCommandHandler(factory, zap.NewNop())
	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertNotCalled(t, "CatalogueRepository")
	uow.AssertExpectations(t)
}

func TestUpdateOrderServicesCommandHandler_UnknownOrder(t *testing.T) {
	ctx := t.Context()
	ids := []int64{12}
	cmd, _ := commands.NewUpdateOrderServicesCommand(kernel.ID(5), &ids)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Exists", ctx, kernel.ID(5)).Return(false, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderServicesUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderServicesCommandHandler(factory, zap.NewNop())
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestUpdateOrderServicesCommandHandler_ReplaceErrorRollsBack(t *testing.T) {
	ctx := t.Context()
	ids := []int64{12}
	cmd, _ := commands.NewUpdateOrderServicesCommand(kernel.ID(5), &ids)

	orderRepo := new(MockOrderRepository)
	catalogueRepo := new(MockCatalogueRepository)
	attachmentRepo := new(MockAttachmentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Exists", ctx, kernel.ID(5)).Return(true, nil).Once(),
		uow.On("CatalogueRepository").Return(catalogueRepo).Once(),
		catalogueRepo.On("FindTariffServices", ctx, []kernel.ID{12}).
			Return(map[kernel.ID]catalogue.TariffService{12: tariffService(t, 12, 100, "10", "0")}, nil).Once(),
		uow.On("AttachmentRepository").Return(attachmentRepo).Once(),
		attachmentRepo.On("ReplaceAll", ctx, kernel.ID(5), mock.Anything).
			Return(errs.NewOperationFailedError("replace order services", errors.New("boom"))).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderServicesUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderServicesCommandHandler(factory, zap.NewNop())
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrOperationFailed)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestNewUpdateOrderServicesCommand_InvalidIDs(t *testing.T) {
	ids := []int64{3, 0, -1}
	_, err := commands.NewUpdateOrderServicesCommand(kernel.ID(5), &ids)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "tariff_service_ids[1]")
	assert.Contains(t, err.Error(), "tariff_service_ids[2]")

	require.ErrorIs(t,
		commands.UpdateOrderServicesCommand{}.Validate(),
		commands.ErrUpdateOrderServicesCommandIsNotConstructed)
}
