package srs

import (
	"errors"
	"time"

	"github.com/kotonoha/kotonoha-api/internal/domain"
)

// Common errors
var (
	ErrInvalidConfidence    = errors.New("confidence must be between 0 and 3")
	ErrNegativeResponseTime = errors.New("response time cannot be negative")
	ErrInvalidProficiency   = errors.New("proficiency must be between 0 and 1")
	ErrNegativeReviewLoad   = errors.New("review load cannot be negative")
	ErrEmptyCatalog         = errors.New("catalog cannot be empty")
)

// Service is the scheduling engine for one learning domain. All methods are
// pure functions over data already fetched by the caller; the engine
// performs no I/O and holds no mutable state between invocations.
type Service interface {
	// EstimateProficiency converts one attempt into a 0..1 mastery score.
	// lastUpdated is the previous record's update time, or the zero time on
	// a first attempt.
	EstimateProficiency(
		confidence int,
		responseTime time.Duration,
		lastUpdated time.Time,
		now time.Time,
	) (float64, error)

	// SelectMode chooses the recall direction to drill next from the two
	// proficiency tracks of a vocabulary record.
	SelectMode(forward, backward float64) (domain.RecallMode, error)

	// NextDueAt schedules the next presentation of a unit from the attempt's
	// confidence, the freshly estimated proficiency, and the learner's
	// current review backlog.
	NextDueAt(
		confidence int,
		proficiency float64,
		reviewLoad int,
		now time.Time,
	) (time.Time, error)

	// NextUnit decides which unit of a level to present next, either a new
	// one or the earliest-due reviewable one, with the fallbacks described
	// on selectNextUnit. Returns ErrEmptyCatalog when the level has no
	// catalog units.
	NextUnit(
		catalog []domain.LearningUnit,
		records []*domain.LearningRecord,
		now time.Time,
	) (*Selection, error)

	// NextReviewAllUnit picks the globally earliest-due reviewable unit
	// across the learner's whole record set. Returns nil when the learner
	// has no records at all.
	NextReviewAllUnit(
		records []*domain.LearningRecord,
		now time.Time,
	) (*Selection, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params    *Params
	rng       RNG
	dualTrack bool
}

// NewService creates a scheduling engine with the given parameters and
// randomness source. dualTrack enables the two-direction vocabulary
// behavior. A nil rng falls back to a seeded default; a nil params falls
// back to the default tuning.
func NewService(params *Params, rng RNG, dualTrack bool) Service {
	if params == nil {
		params = NewDefaultParams()
	}
	if rng == nil {
		rng = newDefaultRNG()
	}
	return &defaultService{
		params:    params,
		rng:       rng,
		dualTrack: dualTrack,
	}
}

// EstimateProficiency implements the Service interface.
func (s *defaultService) EstimateProficiency(
	confidence int,
	responseTime time.Duration,
	lastUpdated time.Time,
	now time.Time,
) (float64, error) {
	if confidence < domain.MinConfidence || confidence > domain.MaxConfidence {
		return 0, ErrInvalidConfidence
	}
	if responseTime < 0 {
		return 0, ErrNegativeResponseTime
	}

	return estimateProficiency(confidence, responseTime, lastUpdated, now, s.params), nil
}

// SelectMode implements the Service interface.
func (s *defaultService) SelectMode(forward, backward float64) (domain.RecallMode, error) {
	if forward < 0 || forward > 1 || backward < 0 || backward > 1 {
		return "", ErrInvalidProficiency
	}

	return selectMode(forward, backward, s.rng, s.params), nil
}

// NextDueAt implements the Service interface.
func (s *defaultService) NextDueAt(
	confidence int,
	proficiency float64,
	reviewLoad int,
	now time.Time,
) (time.Time, error) {
	if confidence < domain.MinConfidence || confidence > domain.MaxConfidence {
		return time.Time{}, ErrInvalidConfidence
	}
	if proficiency < 0 || proficiency > 1 {
		return time.Time{}, ErrInvalidProficiency
	}
	if reviewLoad < 0 {
		return time.Time{}, ErrNegativeReviewLoad
	}

	return nextDueAt(confidence, proficiency, reviewLoad, now, s.params), nil
}

// NextUnit implements the Service interface.
func (s *defaultService) NextUnit(
	catalog []domain.LearningUnit,
	records []*domain.LearningRecord,
	now time.Time,
) (*Selection, error) {
	selection := selectNextUnit(catalog, records, s.dualTrack, now, s.rng)
	if selection == nil {
		return nil, ErrEmptyCatalog
	}
	return selection, nil
}

// NextReviewAllUnit implements the Service interface.
func (s *defaultService) NextReviewAllUnit(
	records []*domain.LearningRecord,
	now time.Time,
) (*Selection, error) {
	return selectReviewAll(records, now), nil
}
