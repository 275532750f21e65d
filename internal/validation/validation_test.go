package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/deppfellow/zombies/internal/errs"
	"github.com/deppfellow/zombies/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formContext(method, target string, form url.Values) echo.Context {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidateCreatePerson(t *testing.T) {
	t.Run("valid name is trimmed", func(t *testing.T) {
		req := &model.CreatePersonRequest{}
		err := BindAndValidate(formContext(http.MethodPost, "/people", url.Values{"name": {"  Ana  "}}), req)
		require.NoError(t, err)
		assert.Equal(t, "Ana", req.Name)
	})

	t.Run("blank name is missing", func(t *testing.T) {
		req := &model.CreatePersonRequest{}
		err := BindAndValidate(formContext(http.MethodPost, "/people", url.Values{"name": {"   "}}), req)

		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, errs.FieldError{Field: "name", Error: "is required"}, httpErr.Errors[0])
	})

	t.Run("too long", func(t *testing.T) {
		req := &model.CreatePersonRequest{}
		err := BindAndValidate(formContext(http.MethodPost, "/people", url.Values{"name": {strings.Repeat("a", 256)}}), req)

		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, "must not exceed 255 characters", httpErr.Errors[0].Error)
	})
}

func TestBindAndValidateMarkEaten(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := &model.MarkEatenRequest{}
		err := BindAndValidate(formContext(http.MethodPut, "/people/eaten", url.Values{"zombie": {"2"}, "person": {"5"}}), req)
		require.NoError(t, err)
		assert.Equal(t, model.MarkEatenRequest{Zombie: 2, Person: 5}, *req)
	})

	t.Run("missing person", func(t *testing.T) {
		req := &model.MarkEatenRequest{}
		err := BindAndValidate(formContext(http.MethodPut, "/people/eaten", url.Values{"zombie": {"2"}}), req)
		require.Error(t, err)
	})

	t.Run("not a number", func(t *testing.T) {
		req := &model.MarkEatenRequest{}
		err := BindAndValidate(formContext(http.MethodPut, "/people/eaten", url.Values{"zombie": {"bub"}, "person": {"5"}}), req)

		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Empty(t, httpErr.Errors)
	})
}

func TestBindAndValidateDeletePerson(t *testing.T) {
	bind := func(id string) (*model.DeletePersonRequest, error) {
		c := echo.New().NewContext(httptest.NewRequest(http.MethodDelete, "/people/"+id, nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(id)

		req := &model.DeletePersonRequest{}
		return req, BindAndValidate(c, req)
	}

	req, err := bind("12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), req.ID)

	_, err = bind("abc")
	assert.Error(t, err)

	_, err = bind("0")
	assert.Error(t, err)
}

func TestCustomValidationErrors(t *testing.T) {
	msg, fields := extractValidationError(CustomValidationErrors{{Field: "zombie", Message: "is not hungry"}})
	assert.Equal(t, "Validation failed", msg)
	assert.Equal(t, []errs.FieldError{{Field: "zombie", Error: "is not hungry"}}, fields)
}
