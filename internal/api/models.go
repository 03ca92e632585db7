package api

import (
	"time"

	"github.com/kotonoha/kotonoha-api/internal/domain"
	"github.com/kotonoha/kotonoha-api/internal/service/learning"
)

// RecordAttemptRequest is the body of POST /api/learn/{domain}/attempts.
type RecordAttemptRequest struct {
	UnitID              string  `json:"unit_id"               validate:"required"`
	Level               int     `json:"level"                 validate:"required,min=1"`
	Confidence          int     `json:"confidence"            validate:"min=0,max=3"`
	ResponseTimeSeconds float64 `json:"response_time_seconds" validate:"min=0"`
}

// LearningRecordResponse is the rewritten record returned after an attempt.
type LearningRecordResponse struct {
	UnitID              string    `json:"unit_id"`
	Domain              string    `json:"domain"`
	Level               int       `json:"level"`
	ProficiencyForward  float64   `json:"proficiency_forward"`
	ProficiencyBackward float64   `json:"proficiency_backward,omitempty"`
	NextMode            string    `json:"next_mode"`
	NextDueAt           time.Time `json:"next_due_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NextUnitResponse is the outcome of GET /api/learn/{domain}/next. Exactly
// one of the two shapes is populated: a chosen unit, or the countdown to the
// next one coming due.
type NextUnitResponse struct {
	UnitID          string     `json:"unit_id,omitempty"`
	Mode            string     `json:"mode,omitempty"`
	New             bool       `json:"new,omitempty"`
	NoUnitAvailable bool       `json:"no_unit_available,omitempty"`
	NextAvailableAt *time.Time `json:"next_available_at,omitempty"`
}

// ReviewLoadResponse is the body of GET /api/learn/{domain}/review-load.
type ReviewLoadResponse struct {
	ReviewLoad int `json:"review_load"`
}

// LevelProgressResponse is one row of GET /api/learn/{domain}/progress.
type LevelProgressResponse struct {
	Level      int     `json:"level"`
	Learned    int     `json:"learned"`
	Unlearned  int     `json:"unlearned"`
	Reviewable int     `json:"reviewable"`
	Progress   float64 `json:"progress"`
}

// recordToResponse converts a domain.LearningRecord to its API shape.
func recordToResponse(record *domain.LearningRecord) LearningRecordResponse {
	return LearningRecordResponse{
		UnitID:              record.UnitID,
		Domain:              string(record.Domain),
		Level:               int(record.Level),
		ProficiencyForward:  record.ProficiencyForward,
		ProficiencyBackward: record.ProficiencyBackward,
		NextMode:            string(record.NextMode),
		NextDueAt:           record.NextDueAt,
		UpdatedAt:           record.UpdatedAt,
	}
}

// nextUnitToResponse converts a learning.NextUnitResult to its API shape.
func nextUnitToResponse(result *learning.NextUnitResult) NextUnitResponse {
	if result.NoUnitAvailable {
		at := result.NextAvailableAt
		return NextUnitResponse{
			NoUnitAvailable: true,
			NextAvailableAt: &at,
		}
	}
	return NextUnitResponse{
		UnitID: result.UnitID,
		Mode:   string(result.Mode),
		New:    result.New,
	}
}

// progressToResponse converts service progress rows to their API shape.
func progressToResponse(rows []learning.LevelProgress) []LevelProgressResponse {
	out := make([]LevelProgressResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, LevelProgressResponse{
			Level:      int(row.Level),
			Learned:    row.Learned,
			Unlearned:  row.Unlearned,
			Reviewable: row.Reviewable,
			Progress:   row.Progress,
		})
	}
	return out
}
