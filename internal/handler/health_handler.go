package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"movie-catalog-api/pkg/apierror"
)

type pinger interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db      pinger
	started time.Time
}

func NewHealthHandler(db pinger) *HealthHandler {
	return &HealthHandler{db: db, started: time.Now()}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.Health(ctx); err != nil {
			slog.WarnContext(ctx, "health check failed", "error", err)
			writeError(w, apierror.New(apierror.CodeServiceUnhealthy, "database unavailable", "", http.StatusServiceUnavailable))
			return
		}
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	}, nil)
}
