package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a lookup miss within the caller's scope.
	ErrNotFound = errors.New("not found")

	// ErrUnknownTenant marks a tenant tag outside the closed type set.
	ErrUnknownTenant = errors.New("unknown tenant")

	// ErrIntegrity marks a state that the schema constraints should make
	// impossible, e.g. two retailers sharing a tenant type. It is a fatal
	// internal fault, never a normal rejection.
	ErrIntegrity = errors.New("data integrity violation")
)

// NotFoundError identifies a missing entity by id, scoped to the caller.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found for ID: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError reports a state conflict, such as a login name already in
// use within the tenant's scope or a retailer still referenced by customers.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ValidationError carries field-level failures from request-shape checks.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}
