package commands

import (
	"errors"
	"fmt"

	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/pkg/guard"
)

var ErrUpdateOrderServicesCommandIsNotConstructed = errors.New(
	"UpdateOrderServicesCommand must be created via NewUpdateOrderServicesCommand constructor",
)

// UpdateOrderServicesCommand replaces the services attached to an order.
//
// The id list distinguishes three cases:
//   - nil: leave the attachments as they are
//   - empty: detach everything
//   - non-empty: attach exactly these tariff services, priced as of now
//
// Example:
//
//	ids := []int64{12, 15}
//	cmd, err := NewUpdateOrderServicesCommand(orderID, &ids)
type UpdateOrderServicesCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.ID
	tariffServiceIDs []kernel.ID
	replace          bool

	guard guard.ConstructorGuard
}

// NewUpdateOrderServicesCommand validates the order id and every tariff service id.
// Duplicate ids are collapsed, keeping the first occurrence.
func NewUpdateOrderServicesCommand(orderID kernel.ID, tariffServiceIDs *[]int64) (UpdateOrderServicesCommand, error) {
	cmd := UpdateOrderServicesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTariffServiceIDs(tariffServiceIDs),
	); err != nil {
		return UpdateOrderServicesCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderServicesCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderServicesCommandIsNotConstructed)
}

func (c UpdateOrderServicesCommand) OrderID() kernel.ID {
	return c.orderID
}

// TariffServiceIDs returns the deduplicated ids in request order.
func (c UpdateOrderServicesCommand) TariffServiceIDs() []kernel.ID {
	return c.tariffServiceIDs
}

// Replace is false when the request carried no id list at all.
func (c UpdateOrderServicesCommand) Replace() bool {
	return c.replace
}

func (c *UpdateOrderServicesCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderServicesCommand) setTariffServiceIDs(raw *[]int64) error {
	if raw == nil {
		return nil
	}

	seen := make(map[kernel.ID]struct{}, len(*raw))
	ids := make([]kernel.ID, 0, len(*raw))
	var errList []error
	for i, value := range *raw {
		id, err := kernel.NewID(value)
		if err != nil {
			errList = append(errList, fmt.Errorf("tariff_service_ids[%d]: %w", i, err))
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	c.tariffServiceIDs = ids
	c.replace = true
	return errors.Join(errList...)
}
