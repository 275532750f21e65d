package model

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// MaxNameLength matches the person.name column.
const MaxNameLength = 255

// CreatePersonRequest is the body of POST /people.
type CreatePersonRequest struct {
	Name string `json:"name" form:"name" validate:"required,max=255"`
}

// Validate trims the name before checking it, so a blank name counts as
// missing.
func (r *CreatePersonRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validate.Struct(r)
}

// NameTooLong reports whether a rejected name was present but over
// MaxNameLength characters.
func (r *CreatePersonRequest) NameTooLong() bool {
	return utf8.RuneCountInString(r.Name) > MaxNameLength
}

// MarkEatenRequest is the body of PUT /people/eaten.
type MarkEatenRequest struct {
	Zombie int64 `json:"zombie" form:"zombie" validate:"required,gt=0"`
	Person int64 `json:"person" form:"person" validate:"required,gt=0"`
}

func (r *MarkEatenRequest) Validate() error {
	return validate.Struct(r)
}

// DeletePersonRequest carries the :id path parameter.
type DeletePersonRequest struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (r *DeletePersonRequest) Validate() error {
	return validate.Struct(r)
}

// EmptyRequest is used by routes that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}
