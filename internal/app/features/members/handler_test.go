package members_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/askbox/internal/app/features/members"
	memberstore "github.com/dalemusser/askbox/internal/app/store/members"
	"github.com/dalemusser/askbox/internal/app/system/apierr"
	"github.com/dalemusser/askbox/internal/testutil"
)

func newHandler(t *testing.T) *members.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db, memberstore.Config{})
	return members.NewHandler(store, apierr.NewWriter(zap.NewNop()), zap.NewNop())
}

func TestServeRegister(t *testing.T) {
	h := newHandler(t)

	body := map[string]any{
		"uid":         "u1",
		"email":       "alice@gmail.com",
		"displayName": "Alice",
	}

	req := testutil.NewJSONRequest(t, "POST", "/api/members", body)
	rec := httptest.NewRecorder()
	h.ServeRegister(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("first register: status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var resp struct {
		ID string `json:"id"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.ID != "u1" {
		t.Errorf("id = %q, want u1", resp.ID)
	}

	// Replaying the same registration succeeds with 200.
	req = testutil.NewJSONRequest(t, "POST", "/api/members", body)
	rec = httptest.NewRecorder()
	h.ServeRegister(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("replay: status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestServeRegister_ScreenNameTaken(t *testing.T) {
	h := newHandler(t)

	first := map[string]any{"uid": "u1", "email": "alice@gmail.com"}
	req := testutil.NewJSONRequest(t, "POST", "/api/members", first)
	rec := httptest.NewRecorder()
	h.ServeRegister(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed register: status = %d: %s", rec.Code, rec.Body.String())
	}

	// Same derived screen name, different uid.
	second := map[string]any{"uid": "u2", "email": "alice@gmail.com"}
	req = testutil.NewJSONRequest(t, "POST", "/api/members", second)
	rec = httptest.NewRecorder()
	h.ServeRegister(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d: %s", rec.Code, http.StatusConflict, rec.Body.String())
	}
}

func TestServeRegister_BadBody(t *testing.T) {
	h := newHandler(t)

	req := httptest.NewRequest("POST", "/api/members", nil)
	rec := httptest.NewRecorder()
	h.ServeRegister(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServeGetByScreenName(t *testing.T) {
	h := newHandler(t)

	seed := map[string]any{"uid": "u1", "email": "alice@gmail.com", "displayName": "Alice"}
	req := testutil.NewJSONRequest(t, "POST", "/api/members", seed)
	rec := httptest.NewRecorder()
	h.ServeRegister(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed register: status = %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/members/screen-name/alice", nil)
	req = testutil.WithChiURLParam(req, "screenName", "alice")
	rec = httptest.NewRecorder()
	h.ServeGetByScreenName(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp struct {
		UID        string `json:"uid"`
		ScreenName string `json:"screenName"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.UID != "u1" || resp.ScreenName != "alice" {
		t.Errorf("got uid %q screenName %q, want u1/alice", resp.UID, resp.ScreenName)
	}
}

func TestServeGetByScreenName_NotFound(t *testing.T) {
	h := newHandler(t)

	req := httptest.NewRequest("GET", "/api/members/screen-name/nobody", nil)
	req = testutil.WithChiURLParam(req, "screenName", "nobody")
	rec := httptest.NewRecorder()
	h.ServeGetByScreenName(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
