package learning_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kotonoha/kotonoha-api/internal/domain"
	"github.com/kotonoha/kotonoha-api/internal/domain/srs"
	"github.com/kotonoha/kotonoha-api/internal/service/learning"
	"github.com/kotonoha/kotonoha-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRecordStore is a mock implementation of the store.RecordStore interface
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) GetRecord(
	ctx context.Context,
	userID uuid.UUID,
	dom domain.LearningDomain,
	unitID string,
) (*domain.LearningRecord, error) {
	args := m.Called(ctx, userID, dom, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LearningRecord), args.Error(1)
}

func (m *MockRecordStore) PutRecord(ctx context.Context, record *domain.LearningRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordStore) ListRecords(
	ctx context.Context,
	userID uuid.UUID,
	dom domain.LearningDomain,
	level domain.Level,
) ([]*domain.LearningRecord, error) {
	args := m.Called(ctx, userID, dom, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LearningRecord), args.Error(1)
}

// MockCatalogStore is a mock implementation of the store.CatalogStore interface
type MockCatalogStore struct {
	mock.Mock
}

func (m *MockCatalogStore) GetUnit(
	ctx context.Context,
	dom domain.LearningDomain,
	unitID string,
) (domain.LearningUnit, error) {
	args := m.Called(ctx, dom, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.LearningUnit), args.Error(1)
}

func (m *MockCatalogStore) ListUnitsForLevel(
	ctx context.Context,
	dom domain.LearningDomain,
	level domain.Level,
) ([]domain.LearningUnit, error) {
	args := m.Called(ctx, dom, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LearningUnit), args.Error(1)
}

func (m *MockCatalogStore) ListLevels(
	ctx context.Context,
	dom domain.LearningDomain,
) ([]domain.Level, error) {
	args := m.Called(ctx, dom)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Level), args.Error(1)
}

// MockEngine is a mock implementation of the srs.Service interface
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) EstimateProficiency(
	confidence int,
	responseTime time.Duration,
	lastUpdated time.Time,
	now time.Time,
) (float64, error) {
	args := m.Called(confidence, responseTime, lastUpdated, now)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockEngine) SelectMode(forward, backward float64) (domain.RecallMode, error) {
	args := m.Called(forward, backward)
	return args.Get(0).(domain.RecallMode), args.Error(1)
}

func (m *MockEngine) NextDueAt(
	confidence int,
	proficiency float64,
	reviewLoad int,
	now time.Time,
) (time.Time, error) {
	args := m.Called(confidence, proficiency, reviewLoad, now)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockEngine) NextUnit(
	catalog []domain.LearningUnit,
	records []*domain.LearningRecord,
	now time.Time,
) (*srs.Selection, error) {
	args := m.Called(catalog, records, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*srs.Selection), args.Error(1)
}

func (m *MockEngine) NextReviewAllUnit(
	records []*domain.LearningRecord,
	now time.Time,
) (*srs.Selection, error) {
	args := m.Called(records, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*srs.Selection), args.Error(1)
}

func newTestService(
	dom domain.LearningDomain,
	records *MockRecordStore,
	catalog *MockCatalogStore,
	engine *MockEngine,
) learning.Service {
	return learning.NewService(dom, records, catalog, engine, nil)
}

func testAttempt(userID uuid.UUID, dom domain.LearningDomain) domain.Attempt {
	return domain.Attempt{
		UserID:       userID,
		Domain:       dom,
		UnitID:       "unit-1",
		Level:        3,
		Confidence:   3,
		ResponseTime: 2 * time.Second,
	}
}

func TestRecordAttemptFirstAttempt(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	dueAt := time.Now().UTC().Add(48 * time.Hour)

	records := new(MockRecordStore)
	catalog := new(MockCatalogStore)
	engine := new(MockEngine)

	catalog.On("GetUnit", mock.Anything, domain.DomainKana, "unit-1").
		Return(domain.Kana{Char: "unit-1", Level: 1}, nil)
	records.On("GetRecord", mock.Anything, userID, domain.DomainKana, "unit-1").
		Return(nil, store.ErrRecordNotFound)
	engine.On("EstimateProficiency", 3, 2*time.Second, time.Time{}, mock.Anything).
		Return(0.52, nil)
	records.On("ListRecords", mock.Anything, userID, domain.DomainKana, domain.LevelAll).
		Return([]*domain.LearningRecord{}, nil)
	engine.On("NextDueAt", 3, 0.52, 0, mock.Anything).
		Return(dueAt, nil)
	records.On("PutRecord", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(domain.DomainKana, records, catalog, engine)

	record, err := svc.RecordAttempt(context.Background(), testAttempt(userID, domain.DomainKana))
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, userID, record.UserID)
	assert.Equal(t, domain.DomainKana, record.Domain)
	assert.Equal(t, "unit-1", record.UnitID)
	assert.Equal(t, domain.Level(1), record.Level, "level comes from the catalog, not the attempt")
	assert.Equal(t, domain.ModeForward, record.NextMode, "single-track domains only drill forward")
	assert.InDelta(t, 0.52, record.ProficiencyForward, 1e-9)
	assert.Zero(t, record.ProficiencyBackward)
	assert.Equal(t, dueAt, record.NextDueAt)

	records.AssertExpectations(t)
	catalog.AssertExpectations(t)
	engine.AssertExpectations(t)
}

func TestRecordAttemptDualTrack(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Now().UTC()
	dueAt := now.Add(24 * time.Hour)

	prior := &domain.LearningRecord{
		UserID:              userID,
		Domain:              domain.DomainWord,
		UnitID:              "unit-1",
		Level:               3,
		ProficiencyForward:  0.8,
		ProficiencyBackward: 0.3,
		NextMode:            domain.ModeForward,
		NextDueAt:           now.Add(-time.Hour),
		UpdatedAt:           now.Add(-48 * time.Hour),
	}

	records := new(MockRecordStore)
	catalog := new(MockCatalogStore)
	engine := new(MockEngine)

	catalog.On("GetUnit", mock.Anything, domain.DomainWord, "unit-1").
		Return(domain.Word{ID: "unit-1", Level: 3}, nil)
	records.On("GetRecord", mock.Anything, userID, domain.DomainWord, "unit-1").
		Return(prior, nil)
	engine.On("EstimateProficiency", 3, 2*time.Second, prior.UpdatedAt, mock.Anything).
		Return(0.9, nil)
	// Mode is chosen from the current standing of both tracks.
	engine.On("SelectMode", 0.8, 0.3).Return(domain.ModeBackward, nil)
	records.On("ListRecords", mock.Anything, userID, domain.DomainWord, domain.LevelAll).
		Return([]*domain.LearningRecord{prior}, nil)
	engine.On("NextDueAt", 3, 0.9, 1, mock.Anything).Return(dueAt, nil)
	records.On("PutRecord", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(domain.DomainWord, records, catalog, engine)

	record, err := svc.RecordAttempt(context.Background(), testAttempt(userID, domain.DomainWord))
	require.NoError(t, err)

	assert.Equal(t, domain.ModeBackward, record.NextMode)
	assert.InDelta(t, 0.9, record.ProficiencyBackward, 1e-9, "estimate lands on the chosen track")
	assert.InDelta(t, 0.8, record.ProficiencyForward, 1e-9, "other track is preserved")
	assert.Equal(t, dueAt, record.NextDueAt)

	engine.AssertExpectations(t)
}

func TestRecordAttemptErrors(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("unknown unit", func(t *testing.T) {
		t.Parallel()

		records := new(MockRecordStore)
		catalog := new(MockCatalogStore)
		engine := new(MockEngine)

		catalog.On("GetUnit", mock.Anything, domain.DomainKana, "unit-1").
			Return(nil, store.ErrUnitNotFound)

		svc := newTestService(domain.DomainKana, records, catalog, engine)

		_, err := svc.RecordAttempt(context.Background(), testAttempt(userID, domain.DomainKana))
		assert.ErrorIs(t, err, learning.ErrUnitNotFound)
	})

	t.Run("invalid attempt", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(
			domain.DomainKana, new(MockRecordStore), new(MockCatalogStore), new(MockEngine))

		attempt := testAttempt(userID, domain.DomainKana)
		attempt.UnitID = ""

		_, err := svc.RecordAttempt(context.Background(), attempt)
		assert.ErrorIs(t, err, domain.ErrEmptyAttemptUnitID)
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		t.Parallel()

		records := new(MockRecordStore)
		catalog := new(MockCatalogStore)
		engine := new(MockEngine)

		catalog.On("GetUnit", mock.Anything, domain.DomainKana, "unit-1").
			Return(domain.Kana{Char: "unit-1", Level: 1}, nil)
		records.On("GetRecord", mock.Anything, userID, domain.DomainKana, "unit-1").
			Return(nil, store.ErrStorageUnavailable)

		svc := newTestService(domain.DomainKana, records, catalog, engine)

		_, err := svc.RecordAttempt(context.Background(), testAttempt(userID, domain.DomainKana))
		require.Error(t, err)

		var svcErr *learning.ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "record_attempt", svcErr.Operation)
		assert.ErrorIs(t, err, store.ErrStorageUnavailable)
	})
}

func TestGetNextUnit(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("unit chosen", func(t *testing.T) {
		t.Parallel()

		records := new(MockRecordStore)
		catalog := new(MockCatalogStore)
		engine := new(MockEngine)

		units := []domain.LearningUnit{domain.Kana{Char: "あ", Level: 1}}
		catalog.On("ListUnitsForLevel", mock.Anything, domain.DomainKana, domain.Level(1)).
			Return(units, nil)
		records.On("ListRecords", mock.Anything, userID, domain.DomainKana, domain.Level(1)).
			Return([]*domain.LearningRecord{}, nil)
		engine.On("NextUnit", units, mock.Anything, mock.Anything).
			Return(&srs.Selection{
				Choice: &srs.Choice{UnitID: "あ", Mode: domain.ModeForward, New: true},
			}, nil)

		svc := newTestService(domain.DomainKana, records, catalog, engine)

		result, err := svc.GetNextUnit(context.Background(), userID, 1)
		require.NoError(t, err)
		assert.Equal(t, "あ", result.UnitID)
		assert.Equal(t, domain.ModeForward, result.Mode)
		assert.True(t, result.New)
		assert.False(t, result.NoUnitAvailable)
	})

	t.Run("countdown when nothing reviewable", func(t *testing.T) {
		t.Parallel()

		records := new(MockRecordStore)
		catalog := new(MockCatalogStore)
		engine := new(MockEngine)

		nextAt := time.Now().UTC().Add(time.Hour)
		catalog.On("ListUnitsForLevel", mock.Anything, domain.DomainKana, domain.Level(1)).
			Return([]domain.LearningUnit{domain.Kana{Char: "あ", Level: 1}}, nil)
		records.On("ListRecords", mock.Anything, userID, domain.DomainKana, domain.Level(1)).
			Return([]*domain.LearningRecord{}, nil)
		engine.On("NextUnit", mock.Anything, mock.Anything, mock.Anything).
			Return(&srs.Selection{NextAvailableAt: nextAt}, nil)

		svc := newTestService(domain.DomainKana, records, catalog, engine)

		result, err := svc.GetNextUnit(context.Background(), userID, 1)
		require.NoError(t, err)
		assert.True(t, result.NoUnitAvailable)
		assert.Equal(t, nextAt, result.NextAvailableAt)
	})

	t.Run("empty catalog level", func(t *testing.T) {
		t.Parallel()

		records := new(MockRecordStore)
		catalog := new(MockCatalogStore)
		engine := new(MockEngine)

		catalog.On("ListUnitsForLevel", mock.Anything, domain.DomainKana, domain.Level(9)).
			Return([]domain.LearningUnit{}, nil)
		records.On("ListRecords", mock.Anything, userID, domain.DomainKana, domain.Level(9)).
			Return([]*domain.LearningRecord{}, nil)
		engine.On("NextUnit", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, srs.ErrEmptyCatalog)

		svc := newTestService(domain.DomainKana, records, catalog, engine)

		_, err := svc.GetNextUnit(context.Background(), userID, 9)
		assert.ErrorIs(t, err, learning.ErrUnitNotFound)
	})

	t.Run("review all", func(t *testing.T) {
		t.Parallel()

		records := new(MockRecordStore)
		catalog := new(MockCatalogStore)
		engine := new(MockEngine)

		recs := []*domain.LearningRecord{{UnitID: "a"}}
		records.On("ListRecords", mock.Anything, userID, domain.DomainKana, domain.LevelAll).
			Return(recs, nil)
		engine.On("NextReviewAllUnit", recs, mock.Anything).
			Return(&srs.Selection{
				Choice: &srs.Choice{UnitID: "a", Mode: domain.ModeForward},
			}, nil)

		svc := newTestService(domain.DomainKana, records, catalog, engine)

		result, err := svc.GetNextUnit(context.Background(), userID, domain.LevelReviewAll)
		require.NoError(t, err)
		assert.Equal(t, "a", result.UnitID)
	})

	t.Run("review all without history", func(t *testing.T) {
		t.Parallel()

		records := new(MockRecordStore)
		catalog := new(MockCatalogStore)
		engine := new(MockEngine)

		records.On("ListRecords", mock.Anything, userID, domain.DomainKana, domain.LevelAll).
			Return([]*domain.LearningRecord{}, nil)
		engine.On("NextReviewAllUnit", mock.Anything, mock.Anything).Return(nil, nil)

		svc := newTestService(domain.DomainKana, records, catalog, engine)

		_, err := svc.GetNextUnit(context.Background(), userID, domain.LevelReviewAll)
		assert.ErrorIs(t, err, learning.ErrNoReviewHistory)
	})

	t.Run("unscoped level rejected", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(
			domain.DomainKana, new(MockRecordStore), new(MockCatalogStore), new(MockEngine))

		_, err := svc.GetNextUnit(context.Background(), userID, domain.LevelAll)
		assert.ErrorIs(t, err, domain.ErrInvalidLevel)
	})
}

func TestGetReviewLoad(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Now().UTC()

	records := new(MockRecordStore)
	catalog := new(MockCatalogStore)
	engine := new(MockEngine)

	stored := []*domain.LearningRecord{
		{UnitID: "a", NextDueAt: now.Add(-time.Hour)},
		{UnitID: "b", NextDueAt: now.Add(-time.Minute)},
		{UnitID: "c", NextDueAt: now.Add(time.Hour)},
	}
	records.On("ListRecords", mock.Anything, userID, domain.DomainSentence, domain.LevelAll).
		Return(stored, nil)

	svc := newTestService(domain.DomainSentence, records, catalog, engine)

	load, err := svc.GetReviewLoad(context.Background(), userID, domain.LevelAll)
	require.NoError(t, err)
	assert.Equal(t, 2, load)

	t.Run("review all pseudo-level rejected", func(t *testing.T) {
		_, err := svc.GetReviewLoad(context.Background(), userID, domain.LevelReviewAll)
		assert.ErrorIs(t, err, domain.ErrInvalidLevel)
	})
}

func TestGetProgress(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Now().UTC()

	records := new(MockRecordStore)
	catalog := new(MockCatalogStore)
	engine := new(MockEngine)

	catalog.On("ListLevels", mock.Anything, domain.DomainKana).
		Return([]domain.Level{1, 2}, nil)
	records.On("ListRecords", mock.Anything, userID, domain.DomainKana, domain.LevelAll).
		Return([]*domain.LearningRecord{
			{UnitID: "あ", Level: 1, ProficiencyForward: 0.5, NextDueAt: now.Add(-time.Hour)},
			{UnitID: "い", Level: 1, ProficiencyForward: 1.0, NextDueAt: now.Add(time.Hour)},
		}, nil)
	catalog.On("ListUnitsForLevel", mock.Anything, domain.DomainKana, domain.Level(1)).
		Return([]domain.LearningUnit{
			domain.Kana{Char: "あ", Level: 1},
			domain.Kana{Char: "い", Level: 1},
			domain.Kana{Char: "う", Level: 1},
		}, nil)
	catalog.On("ListUnitsForLevel", mock.Anything, domain.DomainKana, domain.Level(2)).
		Return([]domain.LearningUnit{
			domain.Kana{Char: "ア", Level: 2},
		}, nil)

	svc := newTestService(domain.DomainKana, records, catalog, engine)

	progress, err := svc.GetProgress(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, progress, 2)

	hiragana := progress[0]
	assert.Equal(t, domain.Level(1), hiragana.Level)
	assert.Equal(t, 2, hiragana.Learned)
	assert.Equal(t, 1, hiragana.Unlearned)
	assert.Equal(t, 1, hiragana.Reviewable)
	assert.InDelta(t, 50.0, hiragana.Progress, 1e-9)

	katakana := progress[1]
	assert.Equal(t, domain.Level(2), katakana.Level)
	assert.Equal(t, 0, katakana.Learned)
	assert.Equal(t, 1, katakana.Unlearned)
	assert.Zero(t, katakana.Progress)
}

func TestServiceErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := learning.NewGetProgressError("failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "get_progress operation failed")
}
