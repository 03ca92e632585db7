package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kotonoha/kotonoha-api/internal/domain"
	"github.com/kotonoha/kotonoha-api/internal/platform/logger"
	"github.com/kotonoha/kotonoha-api/internal/store"
)

// PostgresCatalogStore implements the store.CatalogStore interface
// using a PostgreSQL database as the storage backend. The catalog is
// read-only from the engine's point of view; rows are loaded by import
// tooling.
type PostgresCatalogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCatalogStore creates a new PostgreSQL implementation of the
// CatalogStore interface. If logger is nil, a default logger will be used.
func NewPostgresCatalogStore(db store.DBTX, logger *slog.Logger) *PostgresCatalogStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCatalogStore{
		db:     db,
		logger: logger.With(slog.String("component", "catalog_store")),
	}
}

// Ensure PostgresCatalogStore implements store.CatalogStore interface
var _ store.CatalogStore = (*PostgresCatalogStore)(nil)

// GetUnit implements store.CatalogStore.GetUnit
// It retrieves a single catalog unit by its domain and ID.
// Returns store.ErrUnitNotFound if the unit does not exist.
func (s *PostgresCatalogStore) GetUnit(
	ctx context.Context,
	dom domain.LearningDomain,
	unitID string,
) (domain.LearningUnit, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving catalog unit",
		slog.String("domain", string(dom)),
		slog.String("unit_id", unitID))

	query := `
		SELECT unit_id, level, payload
		FROM catalog_units
		WHERE domain = $1 AND unit_id = $2
	`

	var id string
	var level int
	var payload []byte

	err := s.db.QueryRowContext(ctx, query, dom, unitID).Scan(&id, &level, &payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("catalog unit not found",
				slog.String("domain", string(dom)),
				slog.String("unit_id", unitID))
			return nil, store.ErrUnitNotFound
		}
		log.Error("failed to get catalog unit",
			slog.String("error", err.Error()),
			slog.String("domain", string(dom)),
			slog.String("unit_id", unitID))
		return nil, store.NewStoreError("catalog_unit", "get",
			fmt.Sprintf("domain=%s unit=%s", dom, unitID),
			mapError(err))
	}

	return buildUnit(dom, id, domain.Level(level), payload), nil
}

// ListUnitsForLevel implements store.CatalogStore.ListUnitsForLevel
// It returns every catalog unit at one level of a domain, ordered by unit ID.
// An unknown level yields an empty slice, not an error.
func (s *PostgresCatalogStore) ListUnitsForLevel(
	ctx context.Context,
	dom domain.LearningDomain,
	level domain.Level,
) ([]domain.LearningUnit, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("listing catalog units",
		slog.String("domain", string(dom)),
		slog.String("level", level.String()))

	keys := fmt.Sprintf("domain=%s level=%s", dom, level)

	query := `
		SELECT unit_id, level, payload
		FROM catalog_units
		WHERE domain = $1
	`
	args := []any{dom}

	if level.IsConcrete() {
		query += ` AND level = $2`
		args = append(args, int(level))
	}
	query += ` ORDER BY unit_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query catalog units",
			slog.String("error", err.Error()),
			slog.String("domain", string(dom)))
		return nil, store.NewStoreError("catalog_unit", "list", keys, mapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var units []domain.LearningUnit
	for rows.Next() {
		var id string
		var lvl int
		var payload []byte

		if err := rows.Scan(&id, &lvl, &payload); err != nil {
			log.Error("failed to scan catalog unit row",
				slog.String("error", err.Error()))
			return nil, store.NewStoreError("catalog_unit", "list", keys, mapError(err))
		}
		units = append(units, buildUnit(dom, id, domain.Level(lvl), payload))
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("catalog_unit", "list", keys, mapError(err))
	}

	if units == nil {
		units = []domain.LearningUnit{}
	}

	log.Debug("listed catalog units",
		slog.String("domain", string(dom)),
		slog.Int("count", len(units)))
	return units, nil
}

// ListLevels implements store.CatalogStore.ListLevels
// It returns the distinct concrete levels present in a domain's catalog,
// ascending.
func (s *PostgresCatalogStore) ListLevels(
	ctx context.Context,
	dom domain.LearningDomain,
) ([]domain.Level, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	keys := fmt.Sprintf("domain=%s", dom)

	query := `
		SELECT DISTINCT level
		FROM catalog_units
		WHERE domain = $1
		ORDER BY level
	`

	rows, err := s.db.QueryContext(ctx, query, dom)
	if err != nil {
		log.Error("failed to query catalog levels",
			slog.String("error", err.Error()),
			slog.String("domain", string(dom)))
		return nil, store.NewStoreError("catalog_unit", "list_levels", keys, mapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var levels []domain.Level
	for rows.Next() {
		var lvl int
		if err := rows.Scan(&lvl); err != nil {
			log.Error("failed to scan level row",
				slog.String("error", err.Error()))
			return nil, store.NewStoreError("catalog_unit", "list_levels", keys, mapError(err))
		}
		levels = append(levels, domain.Level(lvl))
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("catalog_unit", "list_levels", keys, mapError(err))
	}

	if levels == nil {
		levels = []domain.Level{}
	}

	return levels, nil
}

// buildUnit materializes the domain-specific unit type for a catalog row.
func buildUnit(dom domain.LearningDomain, id string, level domain.Level, payload []byte) domain.LearningUnit {
	raw := json.RawMessage(payload)
	switch dom {
	case domain.DomainSentence:
		return domain.Sentence{ID: id, Level: level, Payload: raw}
	case domain.DomainKana:
		return domain.Kana{Char: id, Level: level, Payload: raw}
	default:
		return domain.Word{ID: id, Level: level, Payload: raw}
	}
}
