package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

var startTime = time.Now()

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a health handler reporting the given version.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// Healthz handles GET /api/healthz.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":  "healthy",
		"version": h.version,
		"uptime":  time.Since(startTime).String(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
