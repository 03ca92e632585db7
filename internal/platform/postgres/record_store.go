package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kotonoha/kotonoha-api/internal/domain"
	"github.com/kotonoha/kotonoha-api/internal/platform/logger"
	"github.com/kotonoha/kotonoha-api/internal/store"
)

// PostgresRecordStore implements the store.RecordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresRecordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRecordStore creates a new PostgreSQL implementation of the
// RecordStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresRecordStore(db store.DBTX, logger *slog.Logger) *PostgresRecordStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRecordStore{
		db:     db,
		logger: logger.With(slog.String("component", "record_store")),
	}
}

// Ensure PostgresRecordStore implements store.RecordStore interface
var _ store.RecordStore = (*PostgresRecordStore)(nil)

// GetRecord implements store.RecordStore.GetRecord
// It retrieves the learning record for one (user, unit) pair.
// Returns store.ErrRecordNotFound if the learner has never attempted the unit.
func (s *PostgresRecordStore) GetRecord(
	ctx context.Context,
	userID uuid.UUID,
	dom domain.LearningDomain,
	unitID string,
) (*domain.LearningRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving learning record",
		slog.String("user_id", userID.String()),
		slog.String("domain", string(dom)),
		slog.String("unit_id", unitID))

	query := `
		SELECT user_id, domain, unit_id, level,
		       proficiency_forward, proficiency_backward,
		       next_mode, next_due_at, updated_at
		FROM learning_records
		WHERE user_id = $1 AND domain = $2 AND unit_id = $3
	`

	record, err := scanRecord(s.db.QueryRowContext(ctx, query, userID, dom, unitID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("learning record not found",
				slog.String("user_id", userID.String()),
				slog.String("domain", string(dom)),
				slog.String("unit_id", unitID))
			return nil, store.ErrRecordNotFound
		}
		log.Error("failed to get learning record",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("domain", string(dom)),
			slog.String("unit_id", unitID))
		return nil, store.NewStoreError("learning_record", "get",
			fmt.Sprintf("user=%s domain=%s unit=%s", userID, dom, unitID),
			mapError(err))
	}

	return record, nil
}

// PutRecord implements store.RecordStore.PutRecord
// It writes a learning record as a single atomic upsert keyed on
// (user_id, domain, unit_id). Returns validation errors from the domain
// LearningRecord if data is invalid.
func (s *PostgresRecordStore) PutRecord(ctx context.Context, record *domain.LearningRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		log.Warn("learning record validation failed during put",
			slog.String("error", err.Error()),
			slog.String("user_id", record.UserID.String()),
			slog.String("unit_id", record.UnitID))
		return err
	}

	query := `
		INSERT INTO learning_records (
			user_id, domain, unit_id, level,
			proficiency_forward, proficiency_backward,
			next_mode, next_due_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, domain, unit_id) DO UPDATE SET
			level = EXCLUDED.level,
			proficiency_forward = EXCLUDED.proficiency_forward,
			proficiency_backward = EXCLUDED.proficiency_backward,
			next_mode = EXCLUDED.next_mode,
			next_due_at = EXCLUDED.next_due_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		record.UserID,
		record.Domain,
		record.UnitID,
		int(record.Level),
		record.ProficiencyForward,
		record.ProficiencyBackward,
		string(record.NextMode),
		record.NextDueAt,
		record.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to put learning record",
			slog.String("error", err.Error()),
			slog.String("user_id", record.UserID.String()),
			slog.String("domain", string(record.Domain)),
			slog.String("unit_id", record.UnitID))
		return store.NewStoreError("learning_record", "put",
			fmt.Sprintf("user=%s domain=%s unit=%s",
				record.UserID, record.Domain, record.UnitID),
			mapError(err))
	}

	log.Debug("learning record saved",
		slog.String("user_id", record.UserID.String()),
		slog.String("domain", string(record.Domain)),
		slog.String("unit_id", record.UnitID),
		slog.Time("next_due_at", record.NextDueAt))
	return nil
}

// ListRecords implements store.RecordStore.ListRecords
// It returns the learner's records for one domain, scoped to a concrete
// level, or to every level with domain.LevelAll. The listing is ordered by
// unit_id so equally due units resolve deterministically.
func (s *PostgresRecordStore) ListRecords(
	ctx context.Context,
	userID uuid.UUID,
	dom domain.LearningDomain,
	level domain.Level,
) ([]*domain.LearningRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("listing learning records",
		slog.String("user_id", userID.String()),
		slog.String("domain", string(dom)),
		slog.String("level", level.String()))

	keys := fmt.Sprintf("user=%s domain=%s level=%s", userID, dom, level)

	query := `
		SELECT user_id, domain, unit_id, level,
		       proficiency_forward, proficiency_backward,
		       next_mode, next_due_at, updated_at
		FROM learning_records
		WHERE user_id = $1 AND domain = $2
	`
	args := []any{userID, dom}

	if level.IsConcrete() {
		query += ` AND level = $3`
		args = append(args, int(level))
	}
	query += ` ORDER BY unit_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query learning records",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("domain", string(dom)))
		return nil, store.NewStoreError("learning_record", "list", keys, mapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var records []*domain.LearningRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			log.Error("failed to scan learning record row",
				slog.String("error", err.Error()))
			return nil, store.NewStoreError("learning_record", "list", keys, mapError(err))
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("learning_record", "list", keys, mapError(err))
	}

	if records == nil {
		records = []*domain.LearningRecord{}
	}

	log.Debug("listed learning records",
		slog.String("user_id", userID.String()),
		slog.String("domain", string(dom)),
		slog.Int("count", len(records)))
	return records, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.LearningRecord, error) {
	var record domain.LearningRecord
	var level int
	var nextMode string

	err := row.Scan(
		&record.UserID,
		&record.Domain,
		&record.UnitID,
		&level,
		&record.ProficiencyForward,
		&record.ProficiencyBackward,
		&nextMode,
		&record.NextDueAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Level = domain.Level(level)
	record.NextMode = domain.RecallMode(nextMode)
	return &record, nil
}
