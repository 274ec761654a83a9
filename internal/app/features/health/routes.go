// internal/app/features/health/routes.go
package health

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter that serves the health endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/live", h.ServeLive)
	r.Get("/ready", h.ServeReady) // this will be mounted under /health
	return r
}
