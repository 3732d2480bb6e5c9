// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read straight from the database through gorm and return
// flat response models; they never load aggregates.
package queries

import (
	"errors"
	"time"

	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/order"
	"visadesk/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its reference data resolved.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID, true)
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
//	fmt.Println(resp.Number, resp.Country.Name, resp.Client.Name)
type GetOrderQuery struct {
	orderID        kernel.ID
	populateClient bool

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order. The client is loaded only
// when populateClient is set.
func NewGetOrderQuery(orderID kernel.ID, populateClient bool) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID:        orderID,
		populateClient: populateClient,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.ID {
	return q.orderID
}

func (q GetOrderQuery) PopulateClient() bool {
	return q.populateClient
}

// NamedReference is a lookup row reduced to its id and name.
type NamedReference struct {
	ID   kernel.ID
	Name string
}

type VisaDurationResponse struct {
	ID    kernel.ID
	Name  string
	Term  string
	Entry string
}

type UserResponse struct {
	ID        kernel.ID
	Email     string
	FirstName string
	LastName  string
}

type ClientResponse struct {
	ID       kernel.ID
	Name     string
	Type     string
	Email    string
	TariffID *kernel.ID
}

type ApplicantResponse struct {
	FirstName string
	LastName  string
	Email     string
	Gender    order.Gender
}

// GetOrderQueryResponse is the hydrated order. Reference fields are nil when
// the order row carries no value for them; Client is nil unless requested.
type GetOrderQueryResponse struct {
	ID           kernel.ID
	Number       string
	Status       order.Status
	Country      *NamedReference
	Urgency      *NamedReference
	VisaDuration *VisaDurationResponse
	VisaType     *NamedReference
	CreatedBy    *UserResponse
	ClientID     kernel.ID
	Client       *ClientResponse
	Applicant    *ApplicantResponse
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
	ArchivedAt   *time.Time
}
