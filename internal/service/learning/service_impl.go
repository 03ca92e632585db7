package learning

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kotonoha/kotonoha-api/internal/domain"
	"github.com/kotonoha/kotonoha-api/internal/domain/srs"
	"github.com/kotonoha/kotonoha-api/internal/platform/logger"
	"github.com/kotonoha/kotonoha-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*learningServiceImpl)(nil)

// learningServiceImpl implements the Service interface for one domain.
type learningServiceImpl struct {
	dom     domain.LearningDomain
	records store.RecordStore
	catalog store.CatalogStore
	engine  srs.Service
	logger  *slog.Logger
}

// NewService creates a learning Service for the given domain. The engine
// carries the domain's tuning and single- vs dual-track behavior.
func NewService(
	dom domain.LearningDomain,
	records store.RecordStore,
	catalog store.CatalogStore,
	engine srs.Service,
	logger *slog.Logger,
) Service {
	if records == nil {
		panic("records cannot be nil")
	}
	if catalog == nil {
		panic("catalog cannot be nil")
	}
	if engine == nil {
		panic("engine cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &learningServiceImpl{
		dom:     dom,
		records: records,
		catalog: catalog,
		engine:  engine,
		logger: logger.With(
			slog.String("component", "learning_service"),
			slog.String("domain", string(dom)),
		),
	}
}

// RecordAttempt implements Service.RecordAttempt.
func (s *learningServiceImpl) RecordAttempt(
	ctx context.Context,
	attempt domain.Attempt,
) (*domain.LearningRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	attempt.Domain = s.dom
	if err := attempt.Validate(); err != nil {
		log.Warn("attempt validation failed",
			slog.String("error", err.Error()),
			slog.String("user_id", attempt.UserID.String()),
			slog.String("unit_id", attempt.UnitID))
		return nil, err
	}

	log.Debug("recording attempt",
		slog.String("user_id", attempt.UserID.String()),
		slog.String("unit_id", attempt.UnitID),
		slog.Int("confidence", attempt.Confidence))

	unit, err := s.catalog.GetUnit(ctx, s.dom, attempt.UnitID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("attempt for unknown unit",
				slog.String("user_id", attempt.UserID.String()),
				slog.String("unit_id", attempt.UnitID))
			return nil, ErrUnitNotFound
		}
		return nil, NewRecordAttemptError("failed to look up unit", err)
	}

	prior, err := s.records.GetRecord(ctx, attempt.UserID, s.dom, attempt.UnitID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, NewRecordAttemptError("failed to load learning record", err)
	}

	now := time.Now().UTC()

	var lastUpdated time.Time
	if prior != nil {
		lastUpdated = prior.UpdatedAt
	}

	proficiency, err := s.engine.EstimateProficiency(
		attempt.Confidence, attempt.ResponseTime, lastUpdated, now)
	if err != nil {
		return nil, NewRecordAttemptError("failed to estimate proficiency", err)
	}

	record := &domain.LearningRecord{
		UserID:    attempt.UserID,
		Domain:    s.dom,
		UnitID:    attempt.UnitID,
		Level:     unit.UnitLevel(),
		NextMode:  domain.ModeForward,
		UpdatedAt: now,
	}
	if prior != nil {
		record.ProficiencyForward = prior.ProficiencyForward
		record.ProficiencyBackward = prior.ProficiencyBackward
	}

	// For a dual-track domain the next recall direction is chosen from the
	// current standing of both tracks, and the fresh estimate lands on the
	// chosen track. Single-track domains only ever drill forward.
	if s.dom.DualTrack() {
		mode, err := s.engine.SelectMode(record.ProficiencyForward, record.ProficiencyBackward)
		if err != nil {
			return nil, NewRecordAttemptError("failed to select recall mode", err)
		}
		record.NextMode = mode
	}
	record.SetProficiency(record.NextMode, proficiency)

	load, err := s.dueCount(ctx, attempt.UserID, domain.LevelAll, now)
	if err != nil {
		return nil, NewRecordAttemptError("failed to compute review load", err)
	}

	dueAt, err := s.engine.NextDueAt(attempt.Confidence, proficiency, load, now)
	if err != nil {
		return nil, NewRecordAttemptError("failed to schedule next review", err)
	}
	record.NextDueAt = dueAt

	if err := s.records.PutRecord(ctx, record); err != nil {
		log.Error("failed to save learning record",
			slog.String("error", err.Error()),
			slog.String("user_id", attempt.UserID.String()),
			slog.String("unit_id", attempt.UnitID))
		return nil, NewRecordAttemptError("failed to save learning record", err)
	}

	log.Debug("attempt recorded",
		slog.String("user_id", attempt.UserID.String()),
		slog.String("unit_id", attempt.UnitID),
		slog.String("next_mode", string(record.NextMode)),
		slog.Float64("proficiency", proficiency),
		slog.Time("next_due_at", record.NextDueAt))
	return record, nil
}

// GetNextUnit implements Service.GetNextUnit.
func (s *learningServiceImpl) GetNextUnit(
	ctx context.Context,
	userID uuid.UUID,
	level domain.Level,
) (*NextUnitResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("selecting next unit",
		slog.String("user_id", userID.String()),
		slog.String("level", level.String()))

	now := time.Now().UTC()

	if level == domain.LevelReviewAll {
		return s.nextReviewAllUnit(ctx, userID, now)
	}
	if !level.IsConcrete() {
		return nil, domain.ErrInvalidLevel
	}

	catalog, err := s.catalog.ListUnitsForLevel(ctx, s.dom, level)
	if err != nil {
		return nil, NewGetNextUnitError("failed to list catalog units", err)
	}

	records, err := s.records.ListRecords(ctx, userID, s.dom, level)
	if err != nil {
		return nil, NewGetNextUnitError("failed to list learning records", err)
	}

	selection, err := s.engine.NextUnit(catalog, records, now)
	if err != nil {
		if errors.Is(err, srs.ErrEmptyCatalog) {
			log.Debug("no catalog units at level",
				slog.String("level", level.String()))
			return nil, ErrUnitNotFound
		}
		return nil, NewGetNextUnitError("failed to select next unit", err)
	}

	return resultFromSelection(selection), nil
}

// nextReviewAllUnit serves the REVIEW_ALL pseudo-level: the globally
// earliest-due reviewable unit across every level the learner has touched.
func (s *learningServiceImpl) nextReviewAllUnit(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*NextUnitResult, error) {
	records, err := s.records.ListRecords(ctx, userID, s.dom, domain.LevelAll)
	if err != nil {
		return nil, NewGetNextUnitError("failed to list learning records", err)
	}

	selection, err := s.engine.NextReviewAllUnit(records, now)
	if err != nil {
		return nil, NewGetNextUnitError("failed to select review unit", err)
	}
	if selection == nil {
		return nil, ErrNoReviewHistory
	}

	return resultFromSelection(selection), nil
}

// GetReviewLoad implements Service.GetReviewLoad.
func (s *learningServiceImpl) GetReviewLoad(
	ctx context.Context,
	userID uuid.UUID,
	level domain.Level,
) (int, error) {
	if level != domain.LevelAll && !level.IsConcrete() {
		return 0, domain.ErrInvalidLevel
	}

	load, err := s.dueCount(ctx, userID, level, time.Now().UTC())
	if err != nil {
		return 0, NewGetReviewLoadError("failed to count due records", err)
	}
	return load, nil
}

// GetProgress implements Service.GetProgress.
func (s *learningServiceImpl) GetProgress(
	ctx context.Context,
	userID uuid.UUID,
) ([]LevelProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()

	levels, err := s.catalog.ListLevels(ctx, s.dom)
	if err != nil {
		return nil, NewGetProgressError("failed to list catalog levels", err)
	}

	records, err := s.records.ListRecords(ctx, userID, s.dom, domain.LevelAll)
	if err != nil {
		return nil, NewGetProgressError("failed to list learning records", err)
	}

	byLevel := make(map[domain.Level][]*domain.LearningRecord)
	for _, record := range records {
		byLevel[record.Level] = append(byLevel[record.Level], record)
	}

	progress := make([]LevelProgress, 0, len(levels))
	for _, level := range levels {
		units, err := s.catalog.ListUnitsForLevel(ctx, s.dom, level)
		if err != nil {
			return nil, NewGetProgressError("failed to list catalog units", err)
		}

		row := LevelProgress{Level: level}
		row.Learned = len(byLevel[level])
		row.Unlearned = len(units) - row.Learned
		if row.Unlearned < 0 {
			row.Unlearned = 0
		}

		var sum float64
		for _, record := range byLevel[level] {
			if record.IsDue(now) {
				row.Reviewable++
			}
			sum += s.recordProficiency(record)
		}
		if len(units) > 0 {
			row.Progress = 100 * sum / float64(len(units))
		}

		progress = append(progress, row)
	}

	log.Debug("computed progress",
		slog.String("user_id", userID.String()),
		slog.Int("levels", len(progress)))
	return progress, nil
}

// dueCount counts the learner's records due at now, scoped to a level or to
// the whole domain with domain.LevelAll.
func (s *learningServiceImpl) dueCount(
	ctx context.Context,
	userID uuid.UUID,
	level domain.Level,
	now time.Time,
) (int, error) {
	records, err := s.records.ListRecords(ctx, userID, s.dom, level)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, record := range records {
		if record.IsDue(now) {
			count++
		}
	}
	return count, nil
}

// recordProficiency collapses a record to one 0..1 score: the mean of both
// tracks for dual-track domains, the forward track otherwise.
func (s *learningServiceImpl) recordProficiency(record *domain.LearningRecord) float64 {
	if s.dom.DualTrack() {
		return (record.ProficiencyForward + record.ProficiencyBackward) / 2
	}
	return record.ProficiencyForward
}

func resultFromSelection(selection *srs.Selection) *NextUnitResult {
	if selection.NoneAvailable() {
		return &NextUnitResult{
			NoUnitAvailable: true,
			NextAvailableAt: selection.NextAvailableAt,
		}
	}
	return &NextUnitResult{
		UnitID: selection.Choice.UnitID,
		Mode:   selection.Choice.Mode,
		New:    selection.Choice.New,
	}
}
