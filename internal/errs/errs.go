// Package errs define custom error types and utilities.
//
// Two shapes live here:
//   - HTTPError: what a JSON client receives (code, message, status,
//     field errors, action hints).
//   - Error: what the application passes around internally. It carries a
//     machine Kind and a user-facing Message next to the wrapped cause, so
//     the error handler never has to guess what is safe to show.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error for the error handler.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindDatabase   Kind = "database"
	KindInternal   Kind = "internal"
)

// Error is a structured application error.
//
// Message is shown to the user as-is; Err is only logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New builds an Error wrapping err.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Database wraps a data-access failure with a friendly message.
func Database(message string, err error) *Error {
	return New(KindDatabase, message, err)
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// HTTP converts e into the JSON error shape.
func (e *Error) HTTP() *HTTPError {
	status := e.Status()
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message:  e.Message,
		Status:   status,
		Override: true,
	}
}

// KindOf returns the kind of the first *Error in err's chain,
// KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
