// internal/app/features/messages/handler.go
package messages

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	messagestore "github.com/dalemusser/askbox/internal/app/store/messages"
	"github.com/dalemusser/askbox/internal/app/system/apierr"
	"github.com/dalemusser/askbox/internal/app/system/fault"
	"github.com/dalemusser/askbox/internal/app/system/htmlsanitize"
	"github.com/dalemusser/askbox/internal/app/system/paging"
	"github.com/dalemusser/askbox/internal/domain/models"
)

// Handler serves the message box endpoints.
type Handler struct {
	Messages        *messagestore.Store
	Errs            *apierr.Writer
	Log             *zap.Logger
	DefaultPageSize int64
}

// NewHandler creates a messages handler backed by the given store.
// defaultPageSize is used when a paged request omits the size parameter;
// zero means paging.DefaultSize.
func NewHandler(store *messagestore.Store, errs *apierr.Writer, logger *zap.Logger, defaultPageSize int64) *Handler {
	if defaultPageSize <= 0 {
		defaultPageSize = paging.DefaultSize
	}
	return &Handler{
		Messages:        store,
		Errs:            errs,
		Log:             logger,
		DefaultPageSize: defaultPageSize,
	}
}

// postRequest is the JSON body for POST /api/members/{uid}/messages.
// A nil author posts anonymously.
type postRequest struct {
	Message string         `json:"message"`
	Author  *models.Author `json:"author"`
}

// replyRequest is the JSON body for the reply endpoint.
type replyRequest struct {
	Reply string `json:"reply"`
}

// resultResponse acknowledges a write.
type resultResponse struct {
	Result bool `json:"result"`
}

// ServePost handles POST /api/members/{uid}/messages.
func (h *Handler) ServePost(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Errs.Write(w, r, fault.Invalid("request body must be valid JSON"))
		return
	}

	// Visitor-supplied free text is sanitized before it is stored.
	text := htmlsanitize.Sanitize(req.Message)
	author := req.Author
	if author != nil {
		author = &models.Author{
			DisplayName: htmlsanitize.Sanitize(author.DisplayName),
			PhotoURL:    author.PhotoURL,
		}
	}

	if err := h.Messages.Post(r.Context(), uid, text, author); err != nil {
		h.Errs.Write(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusCreated, resultResponse{Result: true})
}

// ServeList handles GET /api/members/{uid}/messages.
//
// Without page or size parameters it returns the full feed newest first.
// With either parameter present it returns one counter-anchored page in
// the {totalElements, totalPages, page, size, content} envelope.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	if !paging.HasPageParams(r) {
		views, err := h.Messages.List(r.Context(), uid)
		if err != nil {
			h.Errs.Write(w, r, err)
			return
		}
		apierr.WriteJSON(w, http.StatusOK, views)
		return
	}

	page := paging.ParsePage(r)
	size := paging.ParseSize(r, h.DefaultPageSize)

	result, err := h.Messages.ListPage(r.Context(), uid, page, size)
	if err != nil {
		h.Errs.Write(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, result)
}

// ServeGet handles GET /api/members/{uid}/messages/{messageID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	messageID := chi.URLParam(r, "messageID")

	view, err := h.Messages.Get(r.Context(), uid, messageID)
	if err != nil {
		h.Errs.Write(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, view)
}

// ServeReply handles POST /api/members/{uid}/messages/{messageID}/reply.
func (h *Handler) ServeReply(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	messageID := chi.URLParam(r, "messageID")

	var req replyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Errs.Write(w, r, fault.Invalid("request body must be valid JSON"))
		return
	}

	reply := htmlsanitize.Sanitize(req.Reply)
	if err := h.Messages.Reply(r.Context(), uid, messageID, reply); err != nil {
		h.Errs.Write(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusCreated, resultResponse{Result: true})
}
