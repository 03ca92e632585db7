package srs

import (
	"time"

	"github.com/kotonoha/kotonoha-api/internal/domain"
)

// Choice is a unit the selector proposes to present.
type Choice struct {
	// UnitID identifies the proposed unit.
	UnitID string

	// Mode is the recall direction to drill. For review picks it is the
	// record's stored next mode; for new and random picks in a dual-track
	// domain it is drawn uniformly. Single-track domains always get forward.
	Mode domain.RecallMode

	// New reports whether the unit has no learning record yet.
	New bool
}

// Selection is the outcome of a next-unit decision: either a Choice, or a
// "nothing available" signal carrying the time at which the earliest unit
// becomes reviewable so the caller can report a countdown.
type Selection struct {
	Choice          *Choice
	NextAvailableAt time.Time
}

// NoneAvailable reports whether the selection carries no unit.
func (s *Selection) NoneAvailable() bool {
	return s.Choice == nil
}

// selectNextUnit decides whether to surface a new unit or a due-for-review
// unit from one level of the catalog.
//
// The new-vs-review draw is weighted by how much of the level the learner
// has already touched: with ratio = |records| / |catalog|, a uniform draw
// above the ratio tries a new unit first. That branch fires almost always
// early in a learner's progress and tapers off as the catalog is exhausted.
// Review picks take the earliest-due reviewable record; ties go to the first
// encountered, so equal inputs give equal outputs. A learner with an empty
// backlog still gets new material: the new-unit branch is retried
// unconditionally before falling back to a countdown. A learner with no
// records at all skips the draw entirely and gets a uniformly random catalog
// unit.
//
// Returns nil when the catalog is empty.
func selectNextUnit(
	catalog []domain.LearningUnit,
	records []*domain.LearningRecord,
	dualTrack bool,
	now time.Time,
	rng RNG,
) *Selection {
	if len(catalog) == 0 {
		return nil
	}

	if len(records) == 0 {
		unit := catalog[rng.IntN(len(catalog))]
		return &Selection{Choice: &Choice{
			UnitID: unit.UnitID(),
			Mode:   drawMode(dualTrack, rng),
			New:    true,
		}}
	}

	ratio := float64(len(records)) / float64(len(catalog))

	if rng.Float64() > ratio {
		if choice := selectNewUnit(catalog, records, dualTrack, rng); choice != nil {
			return &Selection{Choice: choice}
		}
	}

	if choice := selectReviewUnit(records, now); choice != nil {
		return &Selection{Choice: choice}
	}

	// Nothing reviewable; try new material regardless of the draw.
	if choice := selectNewUnit(catalog, records, dualTrack, rng); choice != nil {
		return &Selection{Choice: choice}
	}

	// Every catalog unit has a record and none is due yet.
	next, _ := nextAvailableAt(records)
	return &Selection{NextAvailableAt: next}
}

// selectReviewAll scans a learner's entire record set, ignoring level
// partitioning, and returns the globally earliest-due reviewable unit. It
// never proposes new units. Returns nil when the record set is empty.
func selectReviewAll(records []*domain.LearningRecord, now time.Time) *Selection {
	if len(records) == 0 {
		return nil
	}

	if choice := selectReviewUnit(records, now); choice != nil {
		return &Selection{Choice: choice}
	}

	next, _ := nextAvailableAt(records)
	return &Selection{NextAvailableAt: next}
}

// selectNewUnit picks a uniformly random catalog unit with no existing
// record, or nil if the learner has touched every unit in the catalog.
func selectNewUnit(
	catalog []domain.LearningUnit,
	records []*domain.LearningRecord,
	dualTrack bool,
	rng RNG,
) *Choice {
	recorded := make(map[string]struct{}, len(records))
	for _, r := range records {
		recorded[r.UnitID] = struct{}{}
	}

	fresh := make([]domain.LearningUnit, 0, len(catalog))
	for _, unit := range catalog {
		if _, ok := recorded[unit.UnitID()]; !ok {
			fresh = append(fresh, unit)
		}
	}
	if len(fresh) == 0 {
		return nil
	}

	unit := fresh[rng.IntN(len(fresh))]
	return &Choice{
		UnitID: unit.UnitID(),
		Mode:   drawMode(dualTrack, rng),
		New:    true,
	}
}

// selectReviewUnit picks the reviewable record with the earliest due time,
// or nil if nothing is due yet.
func selectReviewUnit(records []*domain.LearningRecord, now time.Time) *Choice {
	var earliest *domain.LearningRecord
	for _, r := range records {
		if !r.IsDue(now) {
			continue
		}
		if earliest == nil || r.NextDueAt.Before(earliest.NextDueAt) {
			earliest = r
		}
	}
	if earliest == nil {
		return nil
	}
	return &Choice{
		UnitID: earliest.UnitID,
		Mode:   earliest.NextMode,
	}
}

// nextAvailableAt returns the minimum due time across the records.
func nextAvailableAt(records []*domain.LearningRecord) (time.Time, bool) {
	var min time.Time
	for _, r := range records {
		if min.IsZero() || r.NextDueAt.Before(min) {
			min = r.NextDueAt
		}
	}
	return min, !min.IsZero()
}

// drawMode picks a uniformly random recall direction for dual-track domains.
func drawMode(dualTrack bool, rng RNG) domain.RecallMode {
	if !dualTrack {
		return domain.ModeForward
	}
	if rng.IntN(2) == 0 {
		return domain.ModeForward
	}
	return domain.ModeBackward
}
