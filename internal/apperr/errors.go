// Package apperr defines the failure taxonomy shared by the store and
// service layers. Each kind is a distinct type so the HTTP layer can map it
// to a status code with errors.As instead of string matching.
package apperr

import "fmt"

// NotFoundError indicates an operation targeted a nonexistent record.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Entity, e.ID)
}

// NotFound builds a NotFoundError for the given entity and id.
func NotFound(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError indicates a missing or malformed field in the request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for the given field.
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError indicates a uniqueness violation among active records.
type ConflictError struct {
	Resource string
	Value    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.Value)
}

// Conflict builds a ConflictError for the given resource and value.
func Conflict(resource, value string) *ConflictError {
	return &ConflictError{Resource: resource, Value: value}
}

// PreconditionError indicates the record is in the wrong state for the
// requested operation, e.g. purging a record that is not in the recycle bin.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.Reason
}

// Precondition builds a PreconditionError with the given reason.
func Precondition(reason string) *PreconditionError {
	return &PreconditionError{Reason: reason}
}
