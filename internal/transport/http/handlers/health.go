package http_handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/wellbot/wellbot-backend/internal/logger"
	"github.com/wellbot/wellbot-backend/internal/transport/http/response"
)

// ReadyCheck reports whether the backing store can serve requests.
type ReadyCheck func(ctx context.Context) error

type HealthHandler struct {
	ready ReadyCheck
}

func NewHealthHandler(ready ReadyCheck) *HealthHandler {
	return &HealthHandler{ready: ready}
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"message": "Hello, WellBot backend is running!"})
}

// Ping handles GET /ping
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok", "message": "pong!"})
}

// Healthz handles GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}

// Readyz handles GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.ready(ctx); err != nil {
			logger.WithCtx(r.Context()).Warn().Err(err).Msg("readiness check failed")
			response.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  "database unavailable",
			})
			return
		}
	}

	response.OK(w, map[string]string{"status": "ready"})
}
