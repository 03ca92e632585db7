package main

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/kotonoha/kotonoha-api/internal/config"
	"github.com/kotonoha/kotonoha-api/internal/domain"
	"github.com/kotonoha/kotonoha-api/internal/domain/srs"
	"github.com/kotonoha/kotonoha-api/internal/platform/postgres"
	"github.com/kotonoha/kotonoha-api/internal/service/learning"
	"github.com/kotonoha/kotonoha-api/internal/store"
)

// application holds the assembled dependency graph of the server.
type application struct {
	config   *config.Config
	logger   *slog.Logger
	db       *sql.DB
	services map[domain.LearningDomain]learning.Service
}

// newApplication builds every component in dependency order: database,
// migrations, stores, engines, services.
func newApplication(cfg *config.Config) (*application, error) {
	log := slog.Default()

	db, err := setupDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, log); err != nil {
		closeDatabase(db, log)
		return nil, err
	}

	recordStore := postgres.NewPostgresRecordStore(db, log)
	catalogStore := postgres.NewPostgresCatalogStore(db, log)

	return &application{
		config:   cfg,
		logger:   log,
		db:       db,
		services: buildLearningServices(cfg, recordStore, catalogStore, log),
	}, nil
}

// buildLearningServices wires one learning service per domain, each with its
// own engine tuning from the configuration.
func buildLearningServices(
	cfg *config.Config,
	records store.RecordStore,
	catalog store.CatalogStore,
	log *slog.Logger,
) map[domain.LearningDomain]learning.Service {
	newEngine := func(tuning config.DomainTuning, dualTrack bool) srs.Service {
		params := srs.NewParams(srs.ParamsConfig{
			BaseInterval: time.Duration(tuning.BaseIntervalMinutes) * time.Minute,
			TimeLimit:    time.Duration(tuning.TimeLimitSeconds) * time.Second,
		})
		return srs.NewService(params, nil, dualTrack)
	}

	return map[domain.LearningDomain]learning.Service{
		domain.DomainWord: learning.NewService(
			domain.DomainWord, records, catalog,
			newEngine(cfg.SRS.Word, true), log),
		domain.DomainSentence: learning.NewService(
			domain.DomainSentence, records, catalog,
			newEngine(cfg.SRS.Sentence, false), log),
		domain.DomainKana: learning.NewService(
			domain.DomainKana, records, catalog,
			newEngine(cfg.SRS.Kana, false), log),
	}
}

// cleanup releases the application's long-lived resources.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
}
