// Package attachment models the services attached to an order. An attachment
// carries its own copy of the price figures taken from the catalogue at the
// moment it was made; later catalogue changes never reach it.
package attachment

import (
	"errors"

	"visadesk/internal/core/domain/model/catalogue"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/pricing"
)

// Attachment is one service attached to one order.
type Attachment struct {
	id        kernel.ID
	orderID   kernel.ID
	serviceID kernel.ID
	pricing   pricing.Snapshot
}

// Freeze attaches the service priced by tariffService to the order, copying
// price and tax and deriving tax amount and total at this moment.
//
// Example:
//
//	a, err := attachment.Freeze(orderID, tariffService)
//	if err != nil {
//	    return err
//	}
//	attachments = append(attachments, a)
func Freeze(orderID kernel.ID, tariffService catalogue.TariffService) (Attachment, error) {
	if err := errors.Join(orderID.Validate(), tariffService.ID().Validate()); err != nil {
		return Attachment{}, err
	}

	source := tariffService.Pricing()
	snapshot, err := pricing.NewSnapshot(source.Price(), source.Tax())
	if err != nil {
		return Attachment{}, err
	}

	return Attachment{
		orderID:   orderID,
		serviceID: tariffService.ServiceID(),
		pricing:   snapshot,
	}, nil
}

// Restore rebuilds a stored attachment with its frozen figures.
func Restore(id, orderID, serviceID kernel.ID, snapshot pricing.Snapshot) (Attachment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), serviceID.Validate()); err != nil {
		return Attachment{}, err
	}

	return Attachment{
		id:        id,
		orderID:   orderID,
		serviceID: serviceID,
		pricing:   snapshot,
	}, nil
}

// ID is zero until the attachment is stored.
func (a Attachment) ID() kernel.ID {
	return a.id
}

func (a Attachment) OrderID() kernel.ID {
	return a.orderID
}

func (a Attachment) ServiceID() kernel.ID {
	return a.serviceID
}

// Pricing returns the frozen figures.
func (a Attachment) Pricing() pricing.Snapshot {
	return a.pricing
}
