package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Confidence bounds for a learning attempt.
const (
	MinConfidence = 0
	MaxConfidence = 3
)

// Common validation errors for Attempt.
var (
	ErrEmptyAttemptUserID   = errors.New("attempt user ID cannot be empty")
	ErrEmptyAttemptUnitID   = errors.New("attempt unit ID cannot be empty")
	ErrInvalidConfidence    = errors.New("confidence must be between 0 and 3")
	ErrNegativeResponseTime = errors.New("response time cannot be negative")
	ErrInvalidAttemptLevel  = errors.New("attempt level must be a concrete tier")
)

// Attempt is one learning interaction: the learner saw a unit, self-rated
// their confidence 0..3, and took ResponseTime to answer. Attempts are
// transient inputs to the engine; they are never persisted by it.
type Attempt struct {
	UserID       uuid.UUID      `json:"user_id"`
	Domain       LearningDomain `json:"domain"`
	UnitID       string         `json:"unit_id"`
	Level        Level          `json:"level"`
	Confidence   int            `json:"confidence"`
	ResponseTime time.Duration  `json:"response_time"`
}

// Validate checks the Attempt invariants.
func (a *Attempt) Validate() error {
	if a.UserID == uuid.Nil {
		return ErrEmptyAttemptUserID
	}
	if a.UnitID == "" {
		return ErrEmptyAttemptUnitID
	}
	if _, err := ParseLearningDomain(string(a.Domain)); err != nil {
		return err
	}
	if !a.Level.IsConcrete() {
		return ErrInvalidAttemptLevel
	}
	if a.Confidence < MinConfidence || a.Confidence > MaxConfidence {
		return ErrInvalidConfidence
	}
	if a.ResponseTime < 0 {
		return ErrNegativeResponseTime
	}
	return nil
}

// IsMiss reports whether the attempt was a clear failure. Misses bypass the
// exponential scheduler and get a fast fixed retry.
func (a *Attempt) IsMiss() bool {
	return a.Confidence == MinConfidence
}
