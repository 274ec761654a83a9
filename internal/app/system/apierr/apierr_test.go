package apierr_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/askbox/internal/app/system/apierr"
	"github.com/dalemusser/askbox/internal/app/system/fault"
)

func TestWrite_StatusByKind(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "invalid",
			err:        fault.Invalid("uid is required"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not found",
			err:        fault.NotFound("member", "no such member"),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "conflict",
			err:        fault.Conflict("message", "already replied"),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "transient",
			err:        fault.Transient("transaction retries exhausted", nil),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "unclassified",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	ew := apierr.NewWriter(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/test", nil)
			rec := httptest.NewRecorder()

			ew.Write(rec, req, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}

			var body struct {
				Result  bool   `json:"result"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not valid JSON: %v", err)
			}
			if body.Result {
				t.Error("result = true, want false")
			}
			if body.Message == "" {
				t.Error("message is empty")
			}
		})
	}
}

func TestWrite_InternalErrorDoesNotLeak(t *testing.T) {
	ew := apierr.NewWriter(zap.NewNop())
	req := httptest.NewRequest("GET", "/api/test", nil)
	rec := httptest.NewRecorder()

	ew.Write(rec, req, errors.New("mongo: connection(localhost:27017) closed"))

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.Message != "internal error" {
		t.Errorf("message = %q, want it scrubbed to %q", body.Message, "internal error")
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	apierr.WriteJSON(rec, http.StatusCreated, map[string]string{"id": "u1"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body["id"] != "u1" {
		t.Errorf("id = %q, want %q", body["id"], "u1")
	}
}
