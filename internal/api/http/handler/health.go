package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/parishkeeper/parish-server/internal/logger"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Health struct {
	db     Pinger
	logger *logger.Logger
}

func NewHealth(db Pinger, logger *logger.Logger) *Health {
	return &Health{db: db, logger: logger}
}

type healthResponse struct {
	Status string `json:"status"`
}

// Check answers 200 while the database responds and 503 otherwise.
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("Health handler: database ping failed", "error", err.Error())
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
