// Package validation binds request data and validates it.
//
// Rules live in `validate` struct tags on the request types; failures are
// turned into an errs.HTTPError carrying one FieldError per field.
package validation
