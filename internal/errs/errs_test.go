package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("connection refused")
	err := Database("Could not retrieve people", cause)

	assert.Equal(t, KindDatabase, KindOf(err))
	assert.Equal(t, http.StatusInternalServerError, err.Status())
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")

	wrapped := fmt.Errorf("listing: %w", err)
	assert.Equal(t, KindDatabase, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(cause))

	httpErr := New(KindNotFound, "No such person", nil).HTTP()
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "NOT_FOUND", httpErr.Code)
	assert.Equal(t, "No such person", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHTTPErrorHelpers(t *testing.T) {
	assert.Equal(t, "NOT_ACCEPTABLE", MakeUpperCaseWithUnderscores("Not Acceptable"))

	notAcceptable := NewNotAcceptableError([]string{"text/html", "application/json"})
	assert.Equal(t, http.StatusNotAcceptable, notAcceptable.Status)
	assert.Equal(t, "text/html, application/json", notAcceptable.Action.Value)

	bad := NewBadRequestError("Validation failed", true, nil, []FieldError{{Field: "name", Error: "is required"}}, nil)
	assert.True(t, errors.Is(bad, &HTTPError{}))
	assert.Equal(t, "other", bad.WithMessage("other").Message)
	assert.Equal(t, bad.Errors, bad.WithMessage("other").Errors)
}
