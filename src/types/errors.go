package types

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

type ErrorKind string

const (
	ERROR_VALIDATION  ErrorKind = "validation"
	ERROR_CONFLICT    ErrorKind = "conflict"
	ERROR_NOT_FOUND   ErrorKind = "not_found"
	ERROR_REFERENTIAL ErrorKind = "referential_conflict"
	ERROR_TRANSIENT   ErrorKind = "transient"
)

// APIError is the typed error every mutating operation returns instead of
// leaving partial state behind. Dependents is populated for referential
// conflicts so the caller can see what blocks the delete.
type APIError struct {
	Kind       ErrorKind `json:"kind"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Dependents []string  `json:"dependents,omitempty"`
}

func (e *APIError) Error() string { return e.Message }

func NewValidationError(code, message string) *APIError {
	return &APIError{Kind: ERROR_VALIDATION, Code: code, Message: message}
}

func NewConflictError(code, message string) *APIError {
	return &APIError{Kind: ERROR_CONFLICT, Code: code, Message: message}
}

func NewNotFoundError(message string) *APIError {
	return &APIError{Kind: ERROR_NOT_FOUND, Code: "NOT_FOUND", Message: message}
}

func NewReferentialConflictError(message string, dependents []string) *APIError {
	return &APIError{Kind: ERROR_REFERENTIAL, Code: "REFERENTIAL_CONFLICT", Message: message, Dependents: dependents}
}

func NewTransientError(message string) *APIError {
	return &APIError{Kind: ERROR_TRANSIENT, Code: "TRANSIENT", Message: message}
}

// AsAPIError normalizes any error coming out of a common operation. Record
// misses map to not-found, deadline/cancellation to transient (retryable).
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError("record not found")
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewTransientError("operation timed out")
	}
	return &APIError{Kind: ERROR_CONFLICT, Code: "INTERNAL", Message: err.Error()}
}

// HTTPStatus maps an error kind to the response status the handlers use.
func HTTPStatus(err error) int {
	switch AsAPIError(err).Kind {
	case ERROR_VALIDATION:
		return http.StatusBadRequest
	case ERROR_NOT_FOUND:
		return http.StatusNotFound
	case ERROR_CONFLICT, ERROR_REFERENTIAL:
		return http.StatusConflict
	case ERROR_TRANSIENT:
		return http.StatusServiceUnavailable
	}
	return http.StatusUnprocessableEntity
}
