// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/guise/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/guise/internal/app"
)

// NewRouter creates an HTTP handler serving each application under its base
// path, the shared browser resources, and the health endpoints. Base paths
// begin and end with a slash. Middleware is applied globally in the order
// given.
func NewRouter(
	pages []*handlers.PageHandler,
	healthHandler *handlers.HealthHandler,
	resourcesDir string,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	for _, h := range pages {
		base := h.BasePath()
		r.Get(base, h.Page)
		r.Post(base, h.Submit)
		r.Post(base+app.EventPath, h.Events)
		r.Post(base+app.AcknowledgePath, h.Acknowledge)

		if resourcesDir != "" {
			prefix := base + app.ResourcesPath
			r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(resourcesDir))))
		}
	}

	return r
}
