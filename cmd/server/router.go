package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kotonoha/kotonoha-api/internal/api"
	apiMiddleware "github.com/kotonoha/kotonoha-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.config.Auth.JWTSecret)
	learnHandler := api.NewLearnHandler(app.services, app.logger)

	r.Route("/api/learn/{domain}", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Post("/attempts", learnHandler.RecordAttempt)
		r.Get("/next", learnHandler.GetNextUnit)
		r.Get("/review-load", learnHandler.GetReviewLoad)
		r.Get("/progress", learnHandler.GetProgress)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
