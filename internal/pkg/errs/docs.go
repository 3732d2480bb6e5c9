// Package errs provides standardized error types for the order-processing core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers two families of errors:
//   - Validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - Outcomes surfaced to callers: ObjectNotFoundError, PreconditionFailedError,
//     ConstraintViolationError and OperationFailedError
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so callers branch with errors.Is
//
// ConstraintViolationError and OperationFailedError are produced at the
// repository edge only. The boundary maps them to a generic failure and never
// inspects the store-specific cause.
package errs
