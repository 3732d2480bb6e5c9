package http

import (
	"errors"
	"net/http"

	"visadesk/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// genericFailure hides store details from clients.
const genericFailure = "The request could not be completed"

// NewErrorHandler maps handler errors onto HTTP responses:
//
//	validation errors            -> 422
//	errs.ObjectNotFoundError     -> 404
//	errs.PreconditionFailedError -> 409
//	store failures               -> 400, generic message
//	anything else                -> 500
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := mapError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error("failed to write error response", zap.Error(writeErr))
		}
	}
}

func mapError(err error) (int, Error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]fieldErrorResponse, 0, len(validationErrs))
		for _, e := range validationErrs {
			details = append(details, fieldErrorResponse{Field: e.Field(), Message: validationMessage(e)})
		}
		return http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: "Request validation failed",
			Details: details,
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, Error{Code: httpErr.Code, Message: message}
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return respond(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrPreconditionFailed):
		return respond(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return respond(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, errs.ErrConstraintViolation),
		errors.Is(err, errs.ErrOperationFailed):
		return respond(http.StatusBadRequest, genericFailure)
	default:
		return respond(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func respond(status int, message string) (int, Error) {
	return status, Error{Code: status, Message: message}
}
