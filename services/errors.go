package services

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all services. Controllers translate these into
// HTTP statuses; store failures are logged there and never leak internal
// detail to the caller.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("conflicting update")
	ErrUnauthorized = errors.New("not authorized")
	ErrStoreFailure = errors.New("store failure")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s is required", e.Field)
}

func missingField(field string) error {
	return &ValidationError{Field: field}
}

func storeFailure(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreFailure, err)
}
