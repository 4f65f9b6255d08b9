package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jsamuelsen11/guise/internal/ports"
)

const (
	statusOK       = "ok"
	statusReady    = "ready"
	statusNotReady = "not_ready"

	// readinessTimeout bounds one readiness probe.
	readinessTimeout = 3 * time.Second
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler creates a HealthHandler reporting on registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live and always answers 200.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, map[string]string{"status": statusOK})
}

// Readiness handles GET /health/ready: 200 when the theme server and the
// preference store are usable, 503 with each failure otherwise.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	status, code := statusReady, http.StatusOK
	checks := make(map[string]string)
	for name, err := range h.registry.CheckAll(ctx) {
		checks[name] = statusOK
		if err != nil {
			checks[name] = err.Error()
			status, code = statusNotReady, http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, code, map[string]any{"status": status, "checks": checks})
}
