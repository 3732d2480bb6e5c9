package errs

import (
	"errors"
	"fmt"
)

// ErrPreconditionFailed is the sentinel wrapped by PreconditionFailedError.
var ErrPreconditionFailed = errors.New("precondition failed")

// PreconditionFailedError reports that the system is not configured for the
// requested operation, for example a client enrolled in no tariff.
// It is a configuration problem rather than bad user input.
type PreconditionFailedError struct {
	Condition string
	Cause     error
}

// NewPreconditionFailedError creates a PreconditionFailedError describing the unmet condition.
func NewPreconditionFailedError(condition string) *PreconditionFailedError {
	return &PreconditionFailedError{Condition: condition}
}

// NewPreconditionFailedErrorWithCause creates a PreconditionFailedError carrying the underlying error.
func NewPreconditionFailedErrorWithCause(condition string, cause error) *PreconditionFailedError {
	return &PreconditionFailedError{
		Condition: condition,
		Cause:     cause,
	}
}

func (e *PreconditionFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrPreconditionFailed, e.Condition, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrPreconditionFailed, e.Condition)
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}
