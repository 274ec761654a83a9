// internal/app/features/members/routes.go
package members

import "github.com/go-chi/chi/v5"

// MountRoutes registers the member registry endpoints on the supplied
// router. The screen-name lookup lives under its own static segment so the
// uid wildcard used by the message routes stays unambiguous.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/api/members", h.ServeRegister)
	r.Get("/api/members/screen-name/{screenName}", h.ServeGetByScreenName)
}
