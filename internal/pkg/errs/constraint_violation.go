package errs

import (
	"errors"
	"fmt"
)

// ErrConstraintViolation is the sentinel wrapped by ConstraintViolationError.
var ErrConstraintViolation = errors.New("constraint violation")

// ConstraintViolationError reports a write rejected by a store constraint
// (foreign key, unique or check). The store-specific error is kept as Cause
// for logging only.
type ConstraintViolationError struct {
	Operation string
	Cause     error
}

// NewConstraintViolationError creates a ConstraintViolationError for the failed operation.
func NewConstraintViolationError(operation string, cause error) *ConstraintViolationError {
	return &ConstraintViolationError{
		Operation: operation,
		Cause:     cause,
	}
}

func (e *ConstraintViolationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrConstraintViolation, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrConstraintViolation, e.Operation)
}

func (e *ConstraintViolationError) Unwrap() error {
	return ErrConstraintViolation
}
