// Package ports defines the contracts between the order-processing core and
// its infrastructure: persistence, catalogue lookup, audit and notification.
package ports

import (
	"context"

	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// applicant included.
type OrderRepository interface {
	// Add persists a new order and its applicant, then assigns the order its
	// id and number. Constraint failures surface as errs.ConstraintViolationError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the current state of an existing order and upserts its
	// applicant. Returns errs.ObjectNotFoundError when the order is gone.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its applicant.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// Exists reports whether the order exists, archived orders included.
	Exists(ctx context.Context, id kernel.ID) (bool, error)
}
