// internal/app/features/messages/routes.go
package messages

import "github.com/go-chi/chi/v5"

// MountRoutes registers the message box endpoints on the supplied router.
func MountRoutes(r chi.Router, h *Handler) {
	r.Route("/api/members/{uid}/messages", func(r chi.Router) {
		r.Post("/", h.ServePost)
		r.Get("/", h.ServeList)
		r.Get("/{messageID}", h.ServeGet)
		r.Post("/{messageID}/reply", h.ServeReply)
	})
}
