package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors.
	ErrNotFound = errors.New("entity not found")

	// ErrStorageUnavailable is returned when the underlying storage cannot
	// serve an operation (connection failures, timeouts, backend errors).
	// It is always wrapped in a StoreError carrying the attempted operation
	// and keys. The engine never retries; that belongs to the caller.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	// ErrRecordNotFound indicates that the learner has no record for the
	// requested unit.
	ErrRecordNotFound = fmt.Errorf("%w: learning record", ErrNotFound)

	// ErrUnitNotFound indicates that the requested catalog unit does not
	// exist.
	ErrUnitNotFound = fmt.Errorf("%w: catalog unit", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError is a custom error type for store-specific errors with
// additional context: the entity and operation that failed and the keys
// involved.
type StoreError struct {
	Entity    string // e.g. "learning_record", "catalog_unit"
	Operation string // e.g. "get", "put", "list"
	Keys      string // formatted keys of the attempted operation
	Err       error  // original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Keys != "" {
		return fmt.Sprintf("%s operation on %s (%s) failed: %v",
			e.Operation, e.Entity, e.Keys, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %v", e.Operation, e.Entity, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation,
// formatted keys, and wrapped error.
func NewStoreError(entity, operation, keys string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Keys:      keys,
		Err:       err,
	}
}
