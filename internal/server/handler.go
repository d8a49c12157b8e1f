package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"campaign_sync/internal/circuitbreaker"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// BreakerAdmin is the administrative view of the circuit breaker registry.
type BreakerAdmin interface {
	Snapshot() []circuitbreaker.Status
	Reset()
	ResetPlatform(platform string) bool
}

// Handler serves the ops endpoints: health, metrics and circuit breaker
// inspection and reset.
type Handler struct {
	db       Pinger
	breakers BreakerAdmin
	logger   *slog.Logger
	router   chi.Router
}

func NewHandler(db Pinger, breakers BreakerAdmin, logger *slog.Logger) *Handler {
	h := &Handler{
		db:       db,
		breakers: breakers,
		logger:   logger.With("component", "ops"),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/circuit-breakers", h.handleListBreakers)
	r.Post("/circuit-breakers/reset", h.handleResetBreakers)

	h.router = r
	return h
}

func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			h.logger.Error("health check failed", "error", err)
			h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleListBreakers(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.breakers.Snapshot())
}

// handleResetBreakers closes every breaker, or only the one named by the
// platform query parameter. An unknown platform yields 404.
func (h *Handler) handleResetBreakers(w http.ResponseWriter, r *http.Request) {
	platform := r.URL.Query().Get("platform")
	if platform == "" {
		h.breakers.Reset()
		h.logger.Warn("all circuit breakers reset")
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
		return
	}

	if !h.breakers.ResetPlatform(platform) {
		http.Error(w, "unknown platform", http.StatusNotFound)
		return
	}

	h.logger.Warn("circuit breaker reset", "platform", platform)
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "reset", "platform": platform})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", "error", err)
	}
}
