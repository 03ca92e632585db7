package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RecallMode is one of the two directions a vocabulary unit can be drilled
// in. Single-track domains (sentences, kana) always use ModeForward.
type RecallMode string

// Possible recall modes.
const (
	ModeForward  RecallMode = "forward"
	ModeBackward RecallMode = "backward"
)

// Common validation errors for LearningRecord.
var (
	ErrEmptyRecordUserID  = errors.New("learning record user ID cannot be empty")
	ErrEmptyRecordUnitID  = errors.New("learning record unit ID cannot be empty")
	ErrInvalidRecordLevel = errors.New("learning record level must be a concrete tier")
	ErrInvalidProficiency = errors.New("proficiency must be between 0 and 1")
	ErrInvalidRecallMode  = errors.New("invalid recall mode")
	ErrZeroNextDueAt      = errors.New("learning record next due time cannot be zero")
)

// LearningRecord is the persisted scheduling state for one (user, unit)
// pair. It is created on the learner's first attempt for the unit and
// rewritten whole on every subsequent attempt; the engine never deletes it.
//
// Vocabulary records carry two independent proficiency tracks, one per
// recall direction. Single-track domains use ProficiencyForward only and
// keep NextMode at ModeForward.
type LearningRecord struct {
	UserID              uuid.UUID      `json:"user_id"`
	Domain              LearningDomain `json:"domain"`
	UnitID              string         `json:"unit_id"`
	Level               Level          `json:"level"`
	ProficiencyForward  float64        `json:"proficiency_forward"`
	ProficiencyBackward float64        `json:"proficiency_backward"`
	NextMode            RecallMode     `json:"next_mode"`
	NextDueAt           time.Time      `json:"next_due_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// Validate checks the record invariants: identity fields present, both
// proficiency values inside [0,1], a recognized recall mode, and a non-zero
// due time.
func (r *LearningRecord) Validate() error {
	if r.UserID == uuid.Nil {
		return ErrEmptyRecordUserID
	}
	if r.UnitID == "" {
		return ErrEmptyRecordUnitID
	}
	if _, err := ParseLearningDomain(string(r.Domain)); err != nil {
		return err
	}
	if !r.Level.IsConcrete() {
		return ErrInvalidRecordLevel
	}
	if r.ProficiencyForward < 0 || r.ProficiencyForward > 1 {
		return ErrInvalidProficiency
	}
	if r.ProficiencyBackward < 0 || r.ProficiencyBackward > 1 {
		return ErrInvalidProficiency
	}
	if r.NextMode != ModeForward && r.NextMode != ModeBackward {
		return ErrInvalidRecallMode
	}
	if r.NextDueAt.IsZero() {
		return ErrZeroNextDueAt
	}
	return nil
}

// Proficiency returns the score for the given recall direction.
func (r *LearningRecord) Proficiency(mode RecallMode) float64 {
	if mode == ModeBackward {
		return r.ProficiencyBackward
	}
	return r.ProficiencyForward
}

// SetProficiency writes the score for the given recall direction.
func (r *LearningRecord) SetProficiency(mode RecallMode, value float64) {
	if mode == ModeBackward {
		r.ProficiencyBackward = value
		return
	}
	r.ProficiencyForward = value
}

// IsDue reports whether the unit is eligible for review at the given moment.
func (r *LearningRecord) IsDue(now time.Time) bool {
	return !r.NextDueAt.After(now)
}
