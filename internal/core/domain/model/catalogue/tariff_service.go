package catalogue

import (
	"errors"

	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
)

// TariffService is the price of one Service under one Tariff. Its tax amount
// and total are always derived from price and tax through pricing.NewSnapshot.
type TariffService struct {
	id        kernel.ID
	serviceID kernel.ID
	tariffID  kernel.ID
	pricing   pricing.Snapshot
}

// NewTariffService builds a TariffService, deriving tax amount and total.
func NewTariffService(id, serviceID, tariffID kernel.ID, price, tax decimal.Decimal) (TariffService, error) {
	snapshot, err := pricing.NewSnapshot(price, tax)
	if err = errors.Join(id.Validate(), serviceID.Validate(), tariffID.Validate(), err); err != nil {
		return TariffService{}, err
	}

	return TariffService{
		id:        id,
		serviceID: serviceID,
		tariffID:  tariffID,
		pricing:   snapshot,
	}, nil
}

// ID is the handle callers pass back to attach the service to an order.
func (t TariffService) ID() kernel.ID {
	return t.id
}

func (t TariffService) ServiceID() kernel.ID {
	return t.serviceID
}

func (t TariffService) TariffID() kernel.ID {
	return t.tariffID
}

// Pricing returns the current catalogue price snapshot.
func (t TariffService) Pricing() pricing.Snapshot {
	return t.pricing
}
