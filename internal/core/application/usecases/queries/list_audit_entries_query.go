package queries

import (
	"errors"
	"time"

	"visadesk/internal/core/domain/model/audit"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/pkg/guard"
)

var ErrListAuditEntriesQueryIsNotConstructed = errors.New(
	"ListAuditEntriesQuery must be created via NewListAuditEntriesQuery constructor",
)

// ListAuditEntriesQuery lists what one user did, newest first.
type ListAuditEntriesQuery struct {
	userID kernel.ID

	guard guard.ConstructorGuard
}

func NewListAuditEntriesQuery(userID kernel.ID) (ListAuditEntriesQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListAuditEntriesQuery{}, err
	}

	return ListAuditEntriesQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListAuditEntriesQuery) Validate() error {
	return q.guard.Validate(ErrListAuditEntriesQueryIsNotConstructed)
}

func (q ListAuditEntriesQuery) UserID() kernel.ID {
	return q.userID
}

type AuditEntryResponse struct {
	ID        kernel.ID
	UserID    kernel.ID
	Action    audit.Action
	ModelType string
	TargetID  *kernel.ID
	CreatedAt time.Time
}

type ListAuditEntriesQueryResponse struct {
	Entries []AuditEntryResponse
}
