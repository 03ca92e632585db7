// Package learning orchestrates the scheduling engine against the record and
// catalog stores. One Service instance serves one learning domain; the word,
// sentence, and kana services share the implementation and differ only in
// their engine tuning.
package learning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kotonoha/kotonoha-api/internal/domain"
)

// NextUnitResult is the outcome of a next-unit query. Either a unit was
// chosen (UnitID and Mode set) or nothing is reviewable yet and
// NextAvailableAt carries the moment the earliest unit comes due.
type NextUnitResult struct {
	UnitID          string            `json:"unit_id,omitempty"`
	Mode            domain.RecallMode `json:"mode,omitempty"`
	New             bool              `json:"new,omitempty"`
	NoUnitAvailable bool              `json:"no_unit_available,omitempty"`
	NextAvailableAt time.Time         `json:"next_available_at,omitempty"`
}

// LevelProgress summarizes a learner's standing on one catalog level.
type LevelProgress struct {
	Level      domain.Level `json:"level"`
	Learned    int          `json:"learned"`
	Unlearned  int          `json:"unlearned"`
	Reviewable int          `json:"reviewable"`
	Progress   float64      `json:"progress"`
}

// Service provides the learning operations for one domain.
type Service interface {
	// RecordAttempt folds one attempt into the learner's record for the
	// unit: it estimates a fresh proficiency, picks the next recall
	// direction, schedules the next presentation against the learner's
	// current review backlog, and writes everything back as a single
	// upsert.
	//
	// Returns:
	//   - (*domain.LearningRecord, nil): the rewritten record
	//   - (nil, ErrUnitNotFound): if the unit is not in the catalog
	//   - (nil, error): validation errors or wrapped storage failures
	RecordAttempt(ctx context.Context, attempt domain.Attempt) (*domain.LearningRecord, error)

	// GetNextUnit decides what the learner should see next at the given
	// level. The pseudo-level domain.LevelReviewAll scans the learner's
	// whole record set for the globally earliest-due unit and never
	// proposes new units.
	//
	// Returns:
	//   - (*NextUnitResult, nil): a chosen unit, or the countdown variant
	//   - (nil, ErrUnitNotFound): if the level has no catalog units
	//   - (nil, ErrNoReviewHistory): REVIEW_ALL with no records at all
	GetNextUnit(ctx context.Context, userID uuid.UUID, level domain.Level) (*NextUnitResult, error)

	// GetReviewLoad counts the learner's records due now, scoped to a
	// concrete level or to the whole domain with domain.LevelAll.
	GetReviewLoad(ctx context.Context, userID uuid.UUID, level domain.Level) (int, error)

	// GetProgress reports per-level learned/unlearned/reviewable counts and
	// a mean-proficiency percentage for every level in the domain catalog.
	GetProgress(ctx context.Context, userID uuid.UUID) ([]LevelProgress, error)
}

// Common error types for the learning Service.
var (
	// ErrUnitNotFound indicates the attempted or requested unit (or level)
	// has no catalog entry. Requests failing with it should not be retried.
	ErrUnitNotFound = errors.New("unit not found in catalog")

	// ErrNoReviewHistory indicates a REVIEW_ALL query from a learner with
	// no records at all.
	ErrNoReviewHistory = errors.New("no review history")
)

// ServiceError wraps errors from the learning service with the failing
// operation so consumers can differentiate failures with errors.As instead
// of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "record_attempt").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewRecordAttemptError returns a new ServiceError for the record_attempt operation.
func NewRecordAttemptError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "record_attempt", Message: message, Err: err}
}

// NewGetNextUnitError returns a new ServiceError for the get_next_unit operation.
func NewGetNextUnitError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "get_next_unit", Message: message, Err: err}
}

// NewGetReviewLoadError returns a new ServiceError for the get_review_load operation.
func NewGetReviewLoadError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "get_review_load", Message: message, Err: err}
}

// NewGetProgressError returns a new ServiceError for the get_progress operation.
func NewGetProgressError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "get_progress", Message: message, Err: err}
}
