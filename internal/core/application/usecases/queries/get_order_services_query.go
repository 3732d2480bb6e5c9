package queries

import (
	"errors"

	"visadesk/internal/core/domain/model/catalogue"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderServicesQueryIsNotConstructed = errors.New(
	"GetOrderServicesQuery must be created via NewGetOrderServicesQuery constructor",
)

// GetOrderServicesQuery lists the services attached to an order and the ones
// it may still attach under its client's tariff.
type GetOrderServicesQuery struct {
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetOrderServicesQuery(orderID kernel.ID) (GetOrderServicesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderServicesQuery{}, err
	}

	return GetOrderServicesQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderServicesQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderServicesQueryIsNotConstructed)
}

func (q GetOrderServicesQuery) OrderID() kernel.ID {
	return q.orderID
}

// Money is a price breakdown as stored or as quoted.
type Money struct {
	Price     decimal.Decimal
	Tax       decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// AttachedServiceResponse is an attachment with the price frozen at attach time.
type AttachedServiceResponse struct {
	ID        kernel.ID
	ServiceID kernel.ID
	Name      string
	FeeType   catalogue.FeeType
	Money
}

// AvailableServiceResponse is a service the order can attach, priced under
// the client's current tariff. TariffServiceID is what the update command takes.
type AvailableServiceResponse struct {
	TariffServiceID kernel.ID
	ServiceID       kernel.ID
	Name            string
	FeeType         catalogue.FeeType
	Money
}

type GetOrderServicesQueryResponse struct {
	Attached  []AttachedServiceResponse
	Available []AvailableServiceResponse
}
