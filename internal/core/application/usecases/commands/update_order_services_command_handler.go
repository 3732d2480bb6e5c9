package commands

import (
	"context"

	"visadesk/internal/core/domain/model/attachment"
	"visadesk/internal/pkg/errs"

	"go.uber.org/zap"
)

// UpdateOrderServicesCommandHandler replaces the services attached to an order.
//
// Each requested tariff service is looked up in one batch; its price and tax
// are copied onto the attachment and the tax amount and total are computed at
// that moment. Ids that resolve to nothing are skipped with a warning.
// Whether a tariff service belongs to the client's tariff is not checked.
type UpdateOrderServicesCommandHandler struct {
	uowFactory OrderServicesUoWFactory
	logger     *zap.Logger
}

func NewUpdateOrderServicesCommandHandler(
	uowFactory OrderServicesUoWFactory,
	logger *zap.Logger,
) UpdateOrderServicesCommandHandler {
	return UpdateOrderServicesCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With(zap.String("component", "update_order_services")),
	}
}

// Handle applies the command. Returns errs.ObjectNotFoundError when the order does not exist.
func (h *UpdateOrderServicesCommandHandler) Handle(ctx context.Context, cmd UpdateOrderServicesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	exists, err := uow.OrderRepository().Exists(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("order", cmd.OrderID().Int64())
	}

	if !cmd.Replace() {
		return nil
	}

	var attachments []attachment.Attachment
	if ids := cmd.TariffServiceIDs(); len(ids) > 0 {
		found, err := uow.CatalogueRepository().FindTariffServices(ctx, ids)
		if err != nil {
			return err
		}

		attachments = make([]attachment.Attachment, 0, len(ids))
		for _, id := range ids {
			tariffService, ok := found[id]
			if !ok {
				h.logger.Warn("tariff service not found, skipping",
					zap.Int64("order_id", cmd.OrderID().Int64()),
					zap.Int64("tariff_service_id", id.Int64()))
				continue
			}

			a, err := attachment.Freeze(cmd.OrderID(), tariffService)
			if err != nil {
				return err
			}
			attachments = append(attachments, a)
		}
	}

	if err = uow.AttachmentRepository().ReplaceAll(ctx, cmd.OrderID(), attachments); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
