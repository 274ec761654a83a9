// internal/app/features/members/handler.go
package members

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	memberstore "github.com/dalemusser/askbox/internal/app/store/members"
	"github.com/dalemusser/askbox/internal/app/system/apierr"
	"github.com/dalemusser/askbox/internal/app/system/fault"
	"github.com/dalemusser/askbox/internal/app/system/htmlsanitize"
)

// Handler serves the member registry endpoints.
type Handler struct {
	Members *memberstore.Store
	Errs    *apierr.Writer
	Log     *zap.Logger
}

// NewHandler creates a members handler backed by the given store.
func NewHandler(store *memberstore.Store, errs *apierr.Writer, logger *zap.Logger) *Handler {
	return &Handler{
		Members: store,
		Errs:    errs,
		Log:     logger,
	}
}

// registerRequest is the JSON body for POST /api/members.
type registerRequest struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// registerResponse echoes the registered member's id.
type registerResponse struct {
	ID string `json:"id"`
}

// ServeRegister handles POST /api/members.
//
// Registration is idempotent per uid: the first request answers 201, a
// replay with the same uid answers 200 with the same body. A different
// member already holding the derived screen name answers 409.
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Errs.Write(w, r, fault.Invalid("request body must be valid JSON"))
		return
	}

	created, err := h.Members.Register(r.Context(), memberstore.RegisterInput{
		UID:         req.UID,
		Email:       req.Email,
		DisplayName: htmlsanitize.Sanitize(req.DisplayName),
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		h.Errs.Write(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		h.Log.Info("member registered", zap.String("uid", req.UID))
	}
	apierr.WriteJSON(w, status, registerResponse{ID: req.UID})
}

// ServeGetByScreenName handles GET /api/members/screen-name/{screenName}.
func (h *Handler) ServeGetByScreenName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "screenName")

	member, err := h.Members.GetByScreenName(r.Context(), name)
	if err != nil {
		h.Errs.Write(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, member)
}
