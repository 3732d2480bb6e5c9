package order

import (
	"errors"
	"fmt"
	"time"

	"visadesk/internal/core/domain/model/catalogue"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsAlreadyPersisted is returned when an identity is assigned twice.
	ErrOrderIsAlreadyPersisted = errors.New("order already has an id and a number")

	// ErrOrderIsArchived is returned when archiving an order that is already archived.
	ErrOrderIsArchived = errors.New("order is already archived")
)

// Details holds the references every order must carry when it is created.
type Details struct {
	CountryID      kernel.ID
	ClientID       kernel.ID
	CreatedByID    kernel.ID
	UrgencyID      kernel.ID
	VisaDurationID kernel.ID
	VisaTypeID     kernel.ID
}

// Changes is a partial update. Nil fields are left untouched.
type Changes struct {
	Status         *Status
	CountryID      *kernel.ID
	ClientID       *kernel.ID
	CreatedByID    *kernel.ID
	UrgencyID      *kernel.ID
	VisaDurationID *kernel.ID
	VisaTypeID     *kernel.ID
	Applicant      *Applicant
}

// Order is the aggregate root of the order-processing core. It owns the
// order's status, its dimension tags and its applicant.
//
// Order follows these invariants:
//   - id and number are assigned together, exactly once, after first persistence
//   - status is always one of the known statuses
//   - completed_at is set while the status is Completed and only then
//   - archived_at is set at most once
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id     kernel.ID
	number string
	status Status

	clientID    kernel.ID
	createdByID kernel.ID
	dimensions  catalogue.Dimensions

	// applicant is nil until one is supplied
	applicant *Applicant

	createdAt   time.Time
	updatedAt   time.Time
	completedAt *time.Time
	archivedAt  *time.Time

	isConstructed bool
}

// NewOrder creates an unsaved order. The status defaults to Draft when nil.
//
// Parameters:
//   - details: country, client, creator, urgency, visa duration and visa type references
//   - status: initial status, nil for Draft
//   - applicant: optional applicant filed together with the order
//   - now: creation time
//
// Returns:
//   - *Order: the order, without id and number until AssignIdentity is called
//   - error: every validation failure joined together
//
// Example:
//
//	o, err := order.NewOrder(order.Details{
//	    CountryID: 1, ClientID: 3, CreatedByID: 9,
//	    UrgencyID: 2, VisaDurationID: 3, VisaTypeID: 4,
//	}, nil, nil, time.Now())
func NewOrder(details Details, status *Status, applicant *Applicant, now time.Time) (*Order, error) {
	o := &Order{
		status:        Draft,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setClient(details.ClientID),
		o.setCreatedBy(details.CreatedByID),
		o.setDimension(catalogue.Country, details.CountryID),
		o.setDimension(catalogue.Urgency, details.UrgencyID),
		o.setDimension(catalogue.VisaDuration, details.VisaDurationID),
		o.setDimension(catalogue.VisaType, details.VisaTypeID),
	); err != nil {
		return nil, err
	}

	if status != nil {
		if err := o.changeStatus(*status, AnyTransition{}, now); err != nil {
			return nil, err
		}
	}

	if applicant != nil {
		o.SetApplicant(*applicant)
	}

	return o, nil
}

// RestoreParams is the full persisted state of an order.
type RestoreParams struct {
	ID          kernel.ID
	Number      string
	Status      Status
	ClientID    kernel.ID
	CreatedByID kernel.ID
	Dimensions  catalogue.Dimensions
	Applicant   *Applicant
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
	ArchivedAt  *time.Time
}

// RestoreOrder rebuilds an order loaded from the store. Dimensions may be nil
// for rows written before they became mandatory.
func RestoreOrder(p RestoreParams) (*Order, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.Status.Validate(),
		p.ClientID.Validate(),
		p.CreatedByID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:            p.ID,
		number:        p.Number,
		status:        p.Status,
		clientID:      p.ClientID,
		createdByID:   p.CreatedByID,
		dimensions:    p.Dimensions,
		applicant:     p.Applicant,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
		completedAt:   p.CompletedAt,
		archivedAt:    p.ArchivedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// AssignIdentity records the store-assigned id and derives the order number
// from it and the creation year. It succeeds only once per order.
//
// Example:
//
//	// inside the repository, right after INSERT
//	if err := o.AssignIdentity(kernel.ID(dto.ID), dto.CreatedAt); err != nil {
//	    return err
//	}
func (o *Order) AssignIdentity(id kernel.ID, createdAt time.Time) error {
	if o.id != 0 || o.number != "" {
		return ErrOrderIsAlreadyPersisted
	}
	if err := id.Validate(); err != nil {
		return err
	}

	o.id = id
	o.createdAt = createdAt
	o.number = FormatNumber(createdAt.Year(), id)
	return nil
}

// Apply performs a partial update. Only the non-nil fields of changes are
// applied; the status change is checked by policy and the applicant, when
// given, replaces the current one in place.
//
// Returns:
//   - nil on success
//   - the joined validation errors otherwise; the order is left unchanged
//
// Example:
//
//	completed := order.Completed
//	err := o.Apply(order.Changes{Status: &completed}, order.AnyTransition{}, time.Now())
func (o *Order) Apply(changes Changes, policy TransitionPolicy, now time.Time) error {
	next := *o

	err := errors.Join(
		applyOptional(changes.ClientID, next.setClient),
		applyOptional(changes.CreatedByID, next.setCreatedBy),
		applyOptional(changes.CountryID, func(id kernel.ID) error { return next.setDimension(catalogue.Country, id) }),
		applyOptional(changes.UrgencyID, func(id kernel.ID) error { return next.setDimension(catalogue.Urgency, id) }),
		applyOptional(changes.VisaDurationID, func(id kernel.ID) error {
			return next.setDimension(catalogue.VisaDuration, id)
		}),
		applyOptional(changes.VisaTypeID, func(id kernel.ID) error { return next.setDimension(catalogue.VisaType, id) }),
	)
	if changes.Status != nil {
		err = errors.Join(err, next.changeStatus(*changes.Status, policy, now))
	}
	if err != nil {
		return err
	}

	if changes.Applicant != nil {
		next.SetApplicant(*changes.Applicant)
	}

	next.updatedAt = now
	*o = next
	return nil
}

// SetApplicant attaches the applicant or replaces the current one.
func (o *Order) SetApplicant(applicant Applicant) {
	a := applicant
	o.applicant = &a
}

// Archive marks the order as logically deleted. Archiving twice fails with
// an error matching both errs.ErrValueIsInvalid and ErrOrderIsArchived.
func (o *Order) Archive(now time.Time) error {
	if o.archivedAt != nil {
		return errors.Join(errs.NewValueIsInvalidErrorWithCause("archived_at", ErrOrderIsArchived), ErrOrderIsArchived)
	}
	archivedAt := now
	o.archivedAt = &archivedAt
	o.updatedAt = now
	return nil
}

// ID returns the store-assigned id, zero before the order is persisted.
func (o *Order) ID() kernel.ID {
	return o.id
}

// Number returns the order number, empty before the order is persisted.
func (o *Order) Number() string {
	return o.number
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) ClientID() kernel.ID {
	return o.clientID
}

func (o *Order) CreatedByID() kernel.ID {
	return o.createdByID
}

// Dimensions returns the order's tags used for service eligibility.
func (o *Order) Dimensions() catalogue.Dimensions {
	return o.dimensions
}

// Applicant returns the applicant or nil when none was supplied.
func (o *Order) Applicant() *Applicant {
	if o.applicant == nil {
		return nil
	}
	a := *o.applicant
	return &a
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

func (o *Order) ArchivedAt() *time.Time {
	return o.archivedAt
}

// IsArchived reports whether the order was logically deleted.
func (o *Order) IsArchived() bool {
	return o.archivedAt != nil
}

func (o *Order) changeStatus(status Status, policy TransitionPolicy, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if policy == nil {
		policy = AnyTransition{}
	}
	if err := policy.CheckTransition(o.status, status); err != nil {
		return err
	}

	switch {
	case status == Completed && o.status != Completed:
		completedAt := now
		o.completedAt = &completedAt
	case status != Completed:
		o.completedAt = nil
	}

	o.status = status
	return nil
}

func (o *Order) setClient(id kernel.ID) error {
	if id == 0 {
		return errs.NewValueIsRequiredError("client_id")
	}
	if err := id.Validate(); err != nil {
		return fmt.Errorf("client_id: %w", err)
	}
	o.clientID = id
	return nil
}

func (o *Order) setCreatedBy(id kernel.ID) error {
	if id == 0 {
		return errs.NewValueIsRequiredError("created_by_id")
	}
	if err := id.Validate(); err != nil {
		return fmt.Errorf("created_by_id: %w", err)
	}
	o.createdByID = id
	return nil
}

func (o *Order) setDimension(dimension catalogue.Dimension, id kernel.ID) error {
	param := dimension.String() + "_id"
	if id == 0 {
		return errs.NewValueIsRequiredError(param)
	}
	if err := id.Validate(); err != nil {
		return fmt.Errorf("%s: %w", param, err)
	}

	value := id
	switch dimension {
	case catalogue.Country:
		o.dimensions.Country = &value
	case catalogue.Urgency:
		o.dimensions.Urgency = &value
	case catalogue.VisaDuration:
		o.dimensions.VisaDuration = &value
	case catalogue.VisaType:
		o.dimensions.VisaType = &value
	}
	return nil
}

func applyOptional(value *kernel.ID, set func(kernel.ID) error) error {
	if value == nil {
		return nil
	}
	return set(*value)
}
