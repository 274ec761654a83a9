// Package apierr maps store faults onto HTTP responses for the JSON API.
//
// Handlers hand every store error to Write and are done with it: the fault
// kind picks the status code, the response body carries a short message,
// and anything unexpected is logged and reported as a 500 without leaking
// store internals to the client.
package apierr

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/askbox/internal/app/system/fault"
)

// Writer renders API errors and logs the unexpected ones.
type Writer struct {
	log *zap.Logger
}

// NewWriter creates a Writer that logs through the given logger.
func NewWriter(logger *zap.Logger) *Writer {
	return &Writer{log: logger}
}

// errorBody is the JSON envelope for every error response.
type errorBody struct {
	Result  bool   `json:"result"`
	Message string `json:"message"`
}

// Write renders err as a JSON error response on w.
//
// Fault kinds map to statuses as: invalid -> 400, not_found -> 404,
// conflict -> 409, transient -> 503. Errors outside the taxonomy become a
// 500 with a generic message and a logged cause.
func (ew *Writer) Write(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch fault.KindOf(err) {
	case fault.KindInvalid:
		status = http.StatusBadRequest
		msg = err.Error()
	case fault.KindNotFound:
		status = http.StatusNotFound
		msg = err.Error()
	case fault.KindConflict:
		status = http.StatusConflict
		msg = err.Error()
	case fault.KindTransient:
		status = http.StatusServiceUnavailable
		msg = "temporarily unavailable, retry the request"
		ew.log.Warn("transient store failure",
			zap.String("path", r.URL.Path),
			zap.Error(err))
	default:
		ew.log.Error("unhandled error in handler",
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}

	WriteJSON(w, status, errorBody{Result: false, Message: msg})
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
