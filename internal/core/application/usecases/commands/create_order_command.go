package commands

import (
	"errors"

	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/order"
	"visadesk/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderData is the raw payload of a create request. Every reference is
// required; Status and Applicant are optional. The creator is always the
// acting user.
type CreateOrderData struct {
	Status         *string
	CountryID      int64
	ClientID       int64
	UrgencyID      int64
	VisaDurationID int64
	VisaTypeID     int64
	Applicant      *ApplicantData
}

// CreateOrderCommand represents a request to file a new visa order on behalf of a client.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(userID, CreateOrderData{
//	    CountryID: 1, ClientID: 3,
//	    UrgencyID: 2, VisaDurationID: 3, VisaTypeID: 4,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actorID   kernel.ID
	details   order.Details
	status    *order.Status
	applicant *order.Applicant

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the payload and the acting user.
// Returns every validation error joined together.
func NewCreateOrderCommand(actorID kernel.ID, data CreateOrderData) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actorID),
		cmd.setDetails(actorID, data),
		cmd.setStatus(data.Status),
		cmd.setApplicant(data.Applicant),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// ActorID returns the user performing the creation.
func (c CreateOrderCommand) ActorID() kernel.ID {
	return c.actorID
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

// Status returns the requested initial status, nil for the default.
func (c CreateOrderCommand) Status() *order.Status {
	return c.status
}

func (c CreateOrderCommand) Applicant() *order.Applicant {
	return c.applicant
}

func (c *CreateOrderCommand) setActor(actorID kernel.ID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}

func (c *CreateOrderCommand) setDetails(actorID kernel.ID, data CreateOrderData) error {
	var errList []error
	parse := func(param string, raw int64) kernel.ID {
		id, err := requiredID(param, raw)
		errList = append(errList, err)
		return id
	}

	c.details = order.Details{
		CountryID:      parse("country_id", data.CountryID),
		ClientID:       parse("client_id", data.ClientID),
		CreatedByID:    actorID,
		UrgencyID:      parse("urgency_id", data.UrgencyID),
		VisaDurationID: parse("visa_duration_id", data.VisaDurationID),
		VisaTypeID:     parse("visa_type_id", data.VisaTypeID),
	}
	return errors.Join(errList...)
}

func (c *CreateOrderCommand) setStatus(raw *string) error {
	status, err := parseStatus(raw)
	if err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *CreateOrderCommand) setApplicant(data *ApplicantData) error {
	applicant, err := parseApplicant(data)
	if err != nil {
		return err
	}
	c.applicant = applicant
	return nil
}
