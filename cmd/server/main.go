// Package main implements the entry point for the kotonoha API server,
// which schedules spaced-repetition drills over vocabulary, sentence, and
// kana catalogs.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kotonoha/kotonoha-api/internal/config"
	"github.com/kotonoha/kotonoha-api/internal/platform/logger"
)

func main() {
	// A local .env is a development convenience; absence is not an error.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Server.LogLevel)

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	app, err := newApplication(cfg)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(context.Background()); err != nil {
		slog.Error("server terminated with error", "error", err)
		log.Fatalf("server terminated with error: %v", err)
	}
}
