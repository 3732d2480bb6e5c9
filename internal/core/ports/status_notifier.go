package ports

import (
	"context"

	"visadesk/internal/core/domain/model/order"
)

// StatusChange describes an order whose status was changed by a committed update.
type StatusChange struct {
	Order     *order.Order
	OldStatus order.Status
	NewStatus order.Status
}

// StatusNotifier schedules the client notification for a status change.
// Implementations must not block the caller and must not report delivery
// failures back to it: delivery is best effort and at most once.
type StatusNotifier interface {
	NotifyOnOrderStatusUpdate(ctx context.Context, change StatusChange)
}
