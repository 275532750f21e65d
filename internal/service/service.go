// Package service contains the business logic.
//
// It sits between the handler and repository layers: each operation makes
// exactly one repository call, classifies the outcome, records metrics and
// triggers background notifications.
package service
