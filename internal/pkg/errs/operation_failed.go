package errs

import (
	"errors"
	"fmt"
)

// ErrOperationFailed is the sentinel wrapped by OperationFailedError.
var ErrOperationFailed = errors.New("operation failed")

// OperationFailedError is the catch-all for unexpected persistence failures.
// The transaction that produced it has been rolled back.
type OperationFailedError struct {
	Operation string
	Cause     error
}

// NewOperationFailedError creates an OperationFailedError for the failed operation.
func NewOperationFailedError(operation string, cause error) *OperationFailedError {
	return &OperationFailedError{
		Operation: operation,
		Cause:     cause,
	}
}

func (e *OperationFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrOperationFailed, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrOperationFailed, e.Operation)
}

func (e *OperationFailedError) Unwrap() error {
	return ErrOperationFailed
}
