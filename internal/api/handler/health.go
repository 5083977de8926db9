// internal/api/handler/health.go
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"cryptofolio/internal/api/types"
)

// Pinger is implemented by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports liveness and database reachability.
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("Health check: database unreachable", "error", err)
		respondWithJSON(w, h.logger, http.StatusServiceUnavailable, types.HealthResponse{Status: "degraded", Database: "down"})
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, types.HealthResponse{Status: "ok", Database: "up"})
}
