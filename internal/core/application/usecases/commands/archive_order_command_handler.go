package commands

import (
	"context"
	"time"

	"visadesk/internal/core/domain/model/audit"
)

// ArchiveOrderCommandHandler archives an order and records who did it.
type ArchiveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewArchiveOrderCommandHandler(uowFactory OrderUoWFactory) ArchiveOrderCommandHandler {
	return ArchiveOrderCommandHandler{uowFactory: uowFactory}
}

// Handle archives the order. Archiving twice is a validation error.
func (h *ArchiveOrderCommandHandler) Handle(ctx context.Context, cmd ArchiveOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = o.Archive(now); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	entry, err := audit.NewOrderEntry(cmd.ActorID(), audit.ActionArchive, o.ID(), now)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
