package errors

import (
	"errors"
	"net/http"

	"github.com/lib/pq"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

var (
	BadRequest   = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }
	NotFound     = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, msg) }
	Conflict     = func(msg string) *HTTPError { return NewHTTPError(http.StatusConflict, msg) }
	Unauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
	Forbidden    = func(msg string) *HTTPError { return NewHTTPError(http.StatusForbidden, msg) }
)

// Postgres error codes the store raises for booking writes.
const (
	pqExclusionViolation  = "23P01"
	pqCheckViolation      = "23514"
	pqForeignKeyViolation = "23503"
	pqInsufficientPriv    = "42501"
)

// FromStore maps a store constraint violation to a user-facing HTTPError, or
// returns nil when err is not a recognised Postgres error. Constraint
// violations are an expected outcome of concurrent booking, not a bug.
func FromStore(err error) *HTTPError {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}
	switch string(pqErr.Code) {
	case pqExclusionViolation:
		return Conflict("This time slot is already booked. Please choose another time.")
	case pqCheckViolation:
		return BadRequest("Invalid booking time. Please use 30-minute intervals.")
	case pqForeignKeyViolation:
		return BadRequest("Invalid room or course selected. Please refresh and try again.")
	case pqInsufficientPriv:
		return Forbidden("You do not have permission to perform this action.")
	}
	return nil
}
