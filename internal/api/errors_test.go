package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/kotonoha/kotonoha-api/internal/api"
	"github.com/kotonoha/kotonoha-api/internal/domain"
	"github.com/kotonoha/kotonoha-api/internal/service/learning"
	"github.com/kotonoha/kotonoha-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unit not found", learning.ErrUnitNotFound, http.StatusNotFound},
		{"no review history", learning.ErrNoReviewHistory, http.StatusNotFound},
		{"record not found", store.ErrRecordNotFound, http.StatusNotFound},
		{"invalid level", domain.ErrInvalidLevel, http.StatusBadRequest},
		{"invalid domain", domain.ErrInvalidDomain, http.StatusBadRequest},
		{"invalid confidence", domain.ErrInvalidConfidence, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"storage unavailable", store.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{
			"wrapped storage failure",
			learning.NewRecordAttemptError("failed to save", store.ErrStorageUnavailable),
			http.StatusServiceUnavailable,
		},
		{
			"doubly wrapped not found",
			fmt.Errorf("outer: %w", learning.ErrUnitNotFound),
			http.StatusNotFound,
		},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, api.MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"unit not found", learning.ErrUnitNotFound, "Unit not found"},
		{"no review history", learning.ErrNoReviewHistory, "No review history yet"},
		{"storage unavailable", store.ErrStorageUnavailable, "Storage temporarily unavailable"},
		{
			"internal details hidden",
			errors.New("pq: connection to db.internal:5432 refused"),
			"An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, api.GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	fieldErr := errors.New(
		"Key: 'RecordAttemptRequest.UnitID' " +
			"Error:Field validation for 'UnitID' failed on the 'required' tag")
	assert.Equal(t, "Invalid UnitID: required field", api.SanitizeValidationError(fieldErr))

	assert.Equal(t, "Validation error", api.SanitizeValidationError(errors.New("boom")))
}
