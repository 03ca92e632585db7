package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/kotonoha/kotonoha-api/internal/domain"
)

// RecordStore is the learning record store: per-(user, unit) scheduling
// state keyed by user ID, learning domain, and unit ID.
//
// Implementations resolve concurrent writes to the same key last-write-wins;
// callers needing stronger guarantees must serialize writes per (user, unit)
// themselves. Listings are expected to return a bounded set that fits in
// memory for a single scheduling decision.
type RecordStore interface {
	// GetRecord retrieves the record for one (user, unit) pair.
	// Returns ErrRecordNotFound if the learner has never attempted the unit.
	GetRecord(
		ctx context.Context,
		userID uuid.UUID,
		dom domain.LearningDomain,
		unitID string,
	) (*domain.LearningRecord, error)

	// PutRecord writes a record as a single atomic upsert. Proficiency and
	// the next due time always land together; no multi-record transaction is
	// ever required.
	PutRecord(ctx context.Context, record *domain.LearningRecord) error

	// ListRecords returns the learner's records for one domain, scoped to a
	// concrete level, or to every level with domain.LevelAll.
	ListRecords(
		ctx context.Context,
		userID uuid.UUID,
		dom domain.LearningDomain,
		level domain.Level,
	) ([]*domain.LearningRecord, error)
}

// CatalogStore reads the learnable-unit catalog. The catalog is written by
// import tooling outside this service; the engine only reads it.
type CatalogStore interface {
	// GetUnit retrieves a single catalog unit.
	// Returns ErrUnitNotFound if the unit does not exist.
	GetUnit(
		ctx context.Context,
		dom domain.LearningDomain,
		unitID string,
	) (domain.LearningUnit, error)

	// ListUnitsForLevel returns every catalog unit at one level of a domain.
	// An unknown level yields an empty slice, not an error.
	ListUnitsForLevel(
		ctx context.Context,
		dom domain.LearningDomain,
		level domain.Level,
	) ([]domain.LearningUnit, error)

	// ListLevels returns the distinct concrete levels present in a domain's
	// catalog, ascending.
	ListLevels(ctx context.Context, dom domain.LearningDomain) ([]domain.Level, error)
}
