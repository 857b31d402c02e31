package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// HealthHandler provides HTTP health check endpoints.
type HealthHandler struct {
	checkDB   func(ctx context.Context) error
	service   string
	logger    *slog.Logger
	startTime time.Time
}

// NewHealthHandler creates a new health check handler. checkDB is called on
// every readiness probe; a database ping belongs there.
func NewHealthHandler(checkDB func(ctx context.Context) error, service string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		checkDB:   checkDB,
		service:   service,
		logger:    logger,
		startTime: time.Now(),
	}
}

// HealthResponse is the JSON response for liveness checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks"`
}

// RegisterRoutes registers health endpoints on the router.
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)
}

// Healthz handles liveness probe requests.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: h.service,
		Uptime:  time.Since(h.startTime).String(),
	})
}

// Readyz handles readiness probe requests. It reports not ready until the
// database answers a ping.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok"}
	status := http.StatusOK
	overall := "ready"

	if err := h.checkDB(r.Context()); err != nil {
		h.logger.Warn("readiness check failed", "error", err)
		checks["database"] = "unavailable"
		status = http.StatusServiceUnavailable
		overall = "not_ready"
	}

	respondJSON(w, status, ReadinessResponse{
		Status:  overall,
		Service: h.service,
		Checks:  checks,
	})
}
