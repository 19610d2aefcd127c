// Package errors defines the application error type exchanged between the
// service layer and the API layer. Every fault kind carries a stable code so
// automated clients can branch on it; the HTTP status mapping lives here in
// one place.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/juanpineyrob/dscommerce/domain/shared"
)

// ErrorCode stable outward error code.
type ErrorCode string

const (
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeIntegrity      ErrorCode = "DB_INTEGRITY"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
)

// AppError application error with a stable code, a user-visible message and
// optional per-field validation details.
type AppError struct {
	Code    ErrorCode             `json:"code"`
	Message string                `json:"message"`
	Fields  []shared.FieldMessage `json:"errors,omitempty"`
	Err     error                 `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// HTTPStatusCode maps the error code to its HTTP status:
// not found 404, forbidden 403, unauthenticated 401, integrity 400,
// validation 422.
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeIntegrity:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an underlying error with a code and message.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError      { return New(CodeBadRequest, message) }
func NotFound(message string) *AppError        { return New(CodeNotFound, message) }
func Internal(message string) *AppError        { return New(CodeInternal, message) }
func Unauthorized(message string) *AppError    { return New(CodeUnauthorized, message) }
func Forbidden(message string) *AppError       { return New(CodeForbidden, message) }
func Conflict(message string) *AppError        { return New(CodeConflict, message) }
func TooManyRequests(message string) *AppError { return New(CodeTooManyRequest, message) }

// Validation creates a validation error carrying (field, message) pairs.
func Validation(fields []shared.FieldMessage) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: "invalid data",
		Fields:  fields,
	}
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromDomainError translates a domain error into an AppError by sentinel
// classification. Already-translated errors pass through unchanged; anything
// unclassified becomes an internal error that hides its detail from clients.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var domainErr *shared.DomainError
	hasDomain := errors.As(err, &domainErr)

	switch {
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, shared.ErrForbidden):
		return Wrap(err, CodeForbidden, err.Error())
	case errors.Is(err, shared.ErrUnauthenticated):
		return Wrap(err, CodeUnauthorized, err.Error())
	case errors.Is(err, shared.ErrIntegrity):
		return Wrap(err, CodeIntegrity, err.Error())
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		appErr := Wrap(err, CodeValidation, err.Error())
		if hasDomain {
			appErr.Fields = domainErr.Fields
		}
		return appErr
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}
