// Package audit models the append-only log of actions performed by users
// (or by the system) on domain objects.
package audit

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/pkg/errs"
)

// Action is what was done to the target.
type Action string

const (
	ActionAccess  Action = "access"
	ActionArchive Action = "archive"
	ActionCreate  Action = "create"
	ActionDelete  Action = "delete"
	ActionLogin   Action = "login"
	ActionLogout  Action = "logout"
	ActionSignup  Action = "signup"
	ActionUpdate  Action = "update"
)

// ModelTypeOrder tags entries that target an order.
const ModelTypeOrder = "order"

// Validate checks the action against the known values.
func (a Action) Validate() error {
	switch a {
	case ActionAccess, ActionArchive, ActionCreate, ActionDelete,
		ActionLogin, ActionLogout, ActionSignup, ActionUpdate:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid action", string(a)))
	}
}

// Entry is one audit record. A nil actor stands for the system itself.
type Entry struct {
	id        kernel.ID
	actorID   *kernel.ID
	action    Action
	modelType string
	targetID  *kernel.ID
	createdAt time.Time
}

// NewEntry builds an unsaved entry.
func NewEntry(actorID *kernel.ID, action Action, modelType string, targetID *kernel.ID, now time.Time) (*Entry, error) {
	var modelErr error
	if strings.TrimSpace(modelType) == "" {
		modelErr = errs.NewValueIsRequiredError("model_type")
	}

	if err := errors.Join(action.Validate(), modelErr, validateOptional(actorID), validateOptional(targetID)); err != nil {
		return nil, err
	}

	return &Entry{
		actorID:   actorID,
		action:    action,
		modelType: modelType,
		targetID:  targetID,
		createdAt: now,
	}, nil
}

// NewOrderEntry builds an entry performed by a user on an order.
func NewOrderEntry(actorID kernel.ID, action Action, orderID kernel.ID, now time.Time) (*Entry, error) {
	return NewEntry(&actorID, action, ModelTypeOrder, &orderID, now)
}

// RestoreEntry rebuilds a stored entry.
func RestoreEntry(
	id kernel.ID,
	actorID *kernel.ID,
	action Action,
	modelType string,
	targetID *kernel.ID,
	createdAt time.Time,
) *Entry {
	return &Entry{
		id:        id,
		actorID:   actorID,
		action:    action,
		modelType: modelType,
		targetID:  targetID,
		createdAt: createdAt,
	}
}

// MarkStored records the id assigned by the store.
func (e *Entry) MarkStored(id kernel.ID, createdAt time.Time) {
	e.id = id
	e.createdAt = createdAt
}

func (e *Entry) ID() kernel.ID {
	return e.id
}

// ActorID returns the acting user, nil for the system.
func (e *Entry) ActorID() *kernel.ID {
	return e.actorID
}

func (e *Entry) Action() Action {
	return e.action
}

func (e *Entry) ModelType() string {
	return e.modelType
}

func (e *Entry) TargetID() *kernel.ID {
	return e.targetID
}

func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

func validateOptional(id *kernel.ID) error {
	if id == nil {
		return nil
	}
	return id.Validate()
}
