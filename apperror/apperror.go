// Package apperror carries a structured kind on every domain error so the
// HTTP boundary can map failures without inspecting message text.
package apperror

import (
	"errors"
	"net/http"
)

// Kind enumerates the failure categories the API can surface.
type Kind int

const (
	Internal Kind = iota
	Validation
	AlreadyExists
	InvalidCredentials
	Unauthorized
	NotFound
	Forbidden
)

// Error is the application error type. Fields holds optional per-field
// validation messages; Err is the wrapped cause, never shown to clients.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case AlreadyExists:
		return http.StatusConflict
	case InvalidCredentials, Unauthorized:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case Forbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the stable numeric app code included in response envelopes.
func (e *Error) Code() int {
	switch e.Kind {
	case Validation:
		return 40000
	case Unauthorized:
		return 40100
	case InvalidCredentials:
		return 40101
	case Forbidden:
		return 40300
	case NotFound:
		return 40400
	case AlreadyExists:
		return 40900
	default:
		return 50000
	}
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches an underlying cause to a new error of the given kind.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewValidation builds a Validation error with field-level messages.
func NewValidation(message string, fields map[string]string) *Error {
	return &Error{Kind: Validation, Message: message, Fields: fields}
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// From extracts the *Error from err, wrapping unknown errors as Internal so
// unexpected store or infrastructure failures never leak their cause.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Wrap(Internal, "internal server error", err)
}
