// Package storeerr converts gorm and driver errors into the error kinds the
// core understands. It is the only place where store-specific errors are
// inspected.
package storeerr

import (
	"errors"

	"visadesk/internal/pkg/errs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Translate maps err for the named operation:
//   - nil and errors already expressed in errs kinds are returned unchanged
//   - foreign key, unique and check violations become errs.ConstraintViolationError
//   - anything else becomes errs.OperationFailedError
//
// Both translated kinds are logged with the operation name. gorm must be
// opened with TranslateError enabled for constraint errors to be recognised.
func Translate(logger *zap.Logger, operation string, err error) error {
	if err == nil || isCoreError(err) {
		return err
	}

	if errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		logger.Warn("constraint violation", zap.String("operation", operation), zap.Error(err))
		return errs.NewConstraintViolationError(operation, err)
	}

	logger.Error("store operation failed", zap.String("operation", operation), zap.Error(err))
	return errs.NewOperationFailedError(operation, err)
}

func isCoreError(err error) bool {
	for _, kind := range []error{
		errs.ErrObjectNotFound,
		errs.ErrPreconditionFailed,
		errs.ErrConstraintViolation,
		errs.ErrOperationFailed,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsRequired,
		errs.ErrValueIsOutOfRange,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
