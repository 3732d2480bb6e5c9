package order

import (
	"fmt"

	"visadesk/internal/pkg/errs"
)

// Status is the lifecycle state of an order as persisted.
type Status string

const (
	Draft      Status = "draft"
	New        Status = "new"
	InProgress Status = "in_progress"
	Completed  Status = "completed"
	Canceled   Status = "canceled"
)

// getValidStatuses returns the set of statuses accepted by Validate.
func getValidStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		Draft:      {},
		New:        {},
		InProgress: {},
		Completed:  {},
		Canceled:   {},
	}
}

// ParseStatus converts a raw value from a request or a row into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate checks that s is one of the known statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}
