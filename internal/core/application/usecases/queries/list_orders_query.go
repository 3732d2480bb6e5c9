package queries

import (
	"errors"
	"time"

	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/order"
	"visadesk/internal/pkg/errs"
	"visadesk/internal/pkg/guard"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderFilter narrows the order list. Every set field is an equality match.
type OrderFilter struct {
	Status          *order.Status
	CountryID       *kernel.ID
	ClientID        *kernel.ID
	CreatedByID     *kernel.ID
	UrgencyID       *kernel.ID
	VisaDurationID  *kernel.ID
	VisaTypeID      *kernel.ID
	IncludeArchived bool
}

// ListOrdersQuery retrieves one page of orders, newest first.
type ListOrdersQuery struct {
	filter OrderFilter
	page   int
	size   int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a paged list query. A zero page means the first
// page and a zero size means DefaultPageSize.
func NewListOrdersQuery(filter OrderFilter, page, size int) (ListOrdersQuery, error) {
	if page == 0 {
		page = 1
	}
	if size == 0 {
		size = DefaultPageSize
	}

	var statusErr error
	if filter.Status != nil {
		statusErr = filter.Status.Validate()
	}

	var pageErr, sizeErr error
	if page < 1 {
		pageErr = errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded")
	}
	if size < 1 || size > MaxPageSize {
		sizeErr = errs.NewValueIsOutOfRangeError("size", size, 1, MaxPageSize)
	}

	if err := errors.Join(
		pageErr,
		sizeErr,
		statusErr,
		validateFilterID("country_id", filter.CountryID),
		validateFilterID("client_id", filter.ClientID),
		validateFilterID("created_by_id", filter.CreatedByID),
		validateFilterID("urgency_id", filter.UrgencyID),
		validateFilterID("visa_duration_id", filter.VisaDurationID),
		validateFilterID("visa_type_id", filter.VisaTypeID),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		filter: filter,
		page:   page,
		size:   size,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() OrderFilter {
	return q.filter
}

func (q ListOrdersQuery) Page() int {
	return q.page
}

func (q ListOrdersQuery) Size() int {
	return q.size
}

// OrderSummary is one row of the order list.
type OrderSummary struct {
	ID             kernel.ID
	Number         string
	Status         order.Status
	ClientID       kernel.ID
	CreatedByID    kernel.ID
	CountryID      *kernel.ID
	UrgencyID      *kernel.ID
	VisaDurationID *kernel.ID
	VisaTypeID     *kernel.ID
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CompletedAt    *time.Time
	ArchivedAt     *time.Time
}

type ListOrdersQueryResponse struct {
	Items      []OrderSummary
	Page       int
	Size       int
	Total      int64
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

func validateFilterID(param string, id *kernel.ID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return nil
}
