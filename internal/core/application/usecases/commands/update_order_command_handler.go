package commands

import (
	"context"
	"time"

	"visadesk/internal/core/domain/model/audit"
	"visadesk/internal/core/domain/model/order"
	"visadesk/internal/core/ports"
)

// UpdateOrderCommandHandler applies a partial update to an order.
//
// Business rules:
//   - the status change is checked by the configured TransitionPolicy
//   - one UPDATE audit entry is written with every successful update,
//     whether or not the status changed
//   - the client is notified only after commit, and only when the status changed
//   - notification is scheduled, never awaited; it cannot fail the update
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.StatusNotifier
	policy     order.TransitionPolicy
}

// NewUpdateOrderCommandHandler creates a handler for order updates.
// A nil policy accepts every status change.
func NewUpdateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.StatusNotifier,
	policy order.TransitionPolicy,
) UpdateOrderCommandHandler {
	if policy == nil {
		policy = order.AnyTransition{}
	}
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		policy:     policy,
	}
}

// Handle processes the update and returns the updated order.
// Returns errs.ObjectNotFoundError when the order does not exist.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	oldStatus := o.Status()
	if err = o.Apply(cmd.Changes(), h.policy, now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	entry, err := audit.NewOrderEntry(cmd.ActorID(), audit.ActionUpdate, o.ID(), now)
	if err != nil {
		return nil, err
	}
	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if newStatus := o.Status(); newStatus != oldStatus {
		h.notifier.NotifyOnOrderStatusUpdate(ctx, ports.StatusChange{
			Order:     o,
			OldStatus: oldStatus,
			NewStatus: newStatus,
		})
	}

	return o, nil
}
