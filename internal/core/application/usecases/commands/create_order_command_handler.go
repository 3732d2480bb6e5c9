package commands

import (
	"context"
	"time"

	"visadesk/internal/core/domain/model/audit"
	"visadesk/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// The order, its applicant and the CREATE audit entry are written in one transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Println(o.Number()) // e.g. 2024-0042
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Returns the persisted order with its id and number assigned.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o, err := order.NewOrder(cmd.Details(), cmd.Status(), cmd.Applicant(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	entry, err := audit.NewOrderEntry(cmd.ActorID(), audit.ActionCreate, o.ID(), now)
	if err != nil {
		return nil, err
	}
	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
