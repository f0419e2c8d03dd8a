package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"coursemate-ai/internal/contextutil"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	db              *sql.DB
	searchAvailable bool
	checkTimeout    time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sql.DB, searchAvailable bool) *HealthHandler {
	return &HealthHandler{
		db:              db,
		searchAvailable: searchAvailable,
		checkTimeout:    5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ServeHTTP reports the service health. The database is the only hard
// dependency; the search index being unconfigured is reported but does
// not degrade status because the local fallback covers retrieval.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	checkCtx, cancel := context.WithTimeout(ctx, h.checkTimeout)
	defer cancel()

	checks := make(map[string]string)
	status := "healthy"
	httpStatus := http.StatusOK

	if err := h.db.PingContext(checkCtx); err != nil {
		logger.WarnContext(ctx, "database health check failed", "error", err)
		checks["database"] = "error"
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	if h.searchAvailable {
		checks["search_index"] = "configured"
	} else {
		checks["search_index"] = "fallback"
	}

	writeJSON(ctx, w, httpStatus, HealthResponse{Status: status, Checks: checks})
}
