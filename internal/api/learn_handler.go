// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/kotonoha/kotonoha-api/internal/api/shared"
	"github.com/kotonoha/kotonoha-api/internal/domain"
	"github.com/kotonoha/kotonoha-api/internal/platform/logger"
	"github.com/kotonoha/kotonoha-api/internal/redact"
	"github.com/kotonoha/kotonoha-api/internal/service/learning"
)

// LearnHandler handles the learning HTTP requests for every domain. The
// domain is resolved from the URL path and dispatched to that domain's
// learning service.
type LearnHandler struct {
	services map[domain.LearningDomain]learning.Service
	logger   *slog.Logger
}

// NewLearnHandler creates a new LearnHandler over the per-domain services.
func NewLearnHandler(
	services map[domain.LearningDomain]learning.Service,
	logger *slog.Logger,
) *LearnHandler {
	if len(services) == 0 {
		panic("services cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil for LearnHandler")
	}

	return &LearnHandler{
		services: services,
		logger:   logger.With(slog.String("component", "learn_handler")),
	}
}

// resolve extracts the learning domain from the URL and the authenticated
// user from the context, writing the error response itself when either is
// missing. The bool result reports whether the request may proceed.
func (h *LearnHandler) resolve(
	w http.ResponseWriter,
	r *http.Request,
) (learning.Service, uuid.UUID, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	dom, err := domain.ParseLearningDomain(chi.URLParam(r, "domain"))
	if err != nil {
		log.Warn("unknown learning domain in path",
			slog.String("domain", chi.URLParam(r, "domain")))
		shared.RespondWithError(w, r, http.StatusNotFound, "Unknown learning domain")
		return nil, uuid.Nil, false
	}

	svc, ok := h.services[dom]
	if !ok {
		log.Warn("no service registered for domain", slog.String("domain", string(dom)))
		shared.RespondWithError(w, r, http.StatusNotFound, "Unknown learning domain")
		return nil, uuid.Nil, false
	}

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return nil, uuid.Nil, false
	}

	return svc, userID, true
}

// RecordAttempt handles POST /api/learn/{domain}/attempts requests.
// It folds one attempt into the learner's record and responds with the
// rewritten record.
func (h *LearnHandler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	svc, userID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req RecordAttemptRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(
			w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	attempt := domain.Attempt{
		UserID:       userID,
		UnitID:       req.UnitID,
		Level:        domain.Level(req.Level),
		Confidence:   req.Confidence,
		ResponseTime: time.Duration(req.ResponseTimeSeconds * float64(time.Second)),
	}

	record, err := svc.RecordAttempt(r.Context(), attempt)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("attempt recorded",
		slog.String("user_id", userID.String()),
		slog.String("unit_id", record.UnitID))
	shared.RespondWithJSON(w, r, http.StatusOK, recordToResponse(record))
}

// GetNextUnit handles GET /api/learn/{domain}/next?level=N|REVIEW_ALL
// requests.
func (h *LearnHandler) GetNextUnit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	svc, userID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	level, err := domain.ParseLevel(r.URL.Query().Get("level"))
	if err != nil {
		log.Warn("invalid level query parameter",
			slog.String("level", r.URL.Query().Get("level")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid level")
		return
	}

	result, err := svc.GetNextUnit(r.Context(), userID, level)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, nextUnitToResponse(result))
}

// GetReviewLoad handles GET /api/learn/{domain}/review-load?level=N|ALL
// requests. A missing level parameter counts across the whole domain.
func (h *LearnHandler) GetReviewLoad(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	svc, userID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	level := domain.LevelAll
	if raw := r.URL.Query().Get("level"); raw != "" {
		parsed, err := domain.ParseLevel(raw)
		if err != nil {
			log.Warn("invalid level query parameter", slog.String("level", raw))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid level")
			return
		}
		level = parsed
	}

	load, err := svc.GetReviewLoad(r.Context(), userID, level)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ReviewLoadResponse{ReviewLoad: load})
}

// GetProgress handles GET /api/learn/{domain}/progress requests.
func (h *LearnHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	svc, userID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	progress, err := svc.GetProgress(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progressToResponse(progress))
}
