package commands

import (
	"errors"

	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/order"
	"visadesk/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderData is the raw payload of a partial update. Nil fields are left untouched.
type UpdateOrderData struct {
	Status         *string
	CountryID      *int64
	ClientID       *int64
	CreatedByID    *int64
	UrgencyID      *int64
	VisaDurationID *int64
	VisaTypeID     *int64
	Applicant      *ApplicantData
}

// UpdateOrderCommand represents a partial update of an order, status included.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	actorID kernel.ID
	changes order.Changes

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand validates the payload, the order id and the acting user.
func NewUpdateOrderCommand(orderID, actorID kernel.ID, data UpdateOrderData) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actorID),
		cmd.setChanges(data),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c UpdateOrderCommand) ActorID() kernel.ID {
	return c.actorID
}

// Changes returns the fields to apply.
func (c UpdateOrderCommand) Changes() order.Changes {
	return c.changes
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setActor(actorID kernel.ID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}

func (c *UpdateOrderCommand) setChanges(data UpdateOrderData) error {
	var errList []error
	parse := func(param string, raw *int64) *kernel.ID {
		id, err := optionalID(param, raw)
		errList = append(errList, err)
		return id
	}

	status, err := parseStatus(data.Status)
	errList = append(errList, err)
	applicant, err := parseApplicant(data.Applicant)
	errList = append(errList, err)

	c.changes = order.Changes{
		Status:         status,
		CountryID:      parse("country_id", data.CountryID),
		ClientID:       parse("client_id", data.ClientID),
		CreatedByID:    parse("created_by_id", data.CreatedByID),
		UrgencyID:      parse("urgency_id", data.UrgencyID),
		VisaDurationID: parse("visa_duration_id", data.VisaDurationID),
		VisaTypeID:     parse("visa_type_id", data.VisaTypeID),
		Applicant:      applicant,
	}
	return errors.Join(errList...)
}
