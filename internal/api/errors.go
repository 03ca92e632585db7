package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kotonoha/kotonoha-api/internal/domain"
	"github.com/kotonoha/kotonoha-api/internal/service/learning"
	"github.com/kotonoha/kotonoha-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, learning.ErrUnitNotFound),
		errors.Is(err, learning.ErrNoReviewHistory),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidLevel),
		errors.Is(err, domain.ErrInvalidDomain),
		errors.Is(err, domain.ErrEmptyAttemptUnitID),
		errors.Is(err, domain.ErrInvalidConfidence),
		errors.Is(err, domain.ErrNegativeResponseTime),
		errors.Is(err, domain.ErrInvalidAttemptLevel),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Storage unavailability surfaces as 503 so clients can retry
	case errors.Is(err, store.ErrStorageUnavailable):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, learning.ErrUnitNotFound):
		return "Unit not found"

	case errors.Is(err, learning.ErrNoReviewHistory):
		return "No review history yet"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, domain.ErrInvalidLevel),
		errors.Is(err, domain.ErrInvalidAttemptLevel):
		return "Invalid level"

	case errors.Is(err, domain.ErrInvalidDomain):
		return "Invalid learning domain"

	case errors.Is(err, domain.ErrInvalidConfidence):
		return "Confidence must be between 0 and 3"

	case errors.Is(err, domain.ErrNegativeResponseTime):
		return "Response time cannot be negative"

	case errors.Is(err, domain.ErrEmptyAttemptUnitID):
		return "Unit ID is required"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, store.ErrStorageUnavailable):
		return "Storage temporarily unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'recordAttemptRequest.UnitID' Error:Field validation
		// for 'UnitID' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "value too small"
	case "max":
		return "value too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
