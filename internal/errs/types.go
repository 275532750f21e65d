package errs

import (
	"net/http"
	"strings"
)

// NewBadRequestError builds a 400. code overrides the default
// "BAD_REQUEST" when non-nil.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewNotFoundError builds a 404.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewNotAcceptableError builds a 406 for requests whose Accept header
// rules out every representation a route offers.
func NewNotAcceptableError(offered []string) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotAcceptable)),
		Message:  "Not Acceptable",
		Status:   http.StatusNotAcceptable,
		Override: false,
		Action: &Action{
			Type:    "accept",
			Message: "supported media types",
			Value:   strings.Join(offered, ", "),
		},
	}
}

// NewTooManyRequestsError builds a 429.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message:  "Too many requests, the zombies need a rest",
		Status:   http.StatusTooManyRequests,
		Override: true,
	}
}

// NewInternalServerError builds a generic 500 that leaks nothing.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}
