package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/dalemusser/askbox/internal/testutil"
)

func testAppConfig() AppConfig {
	return AppConfig{
		ScreenNameSuffix: "@gmail.com",
		TxnMaxAttempts:   3,
		TxnRetryBackoff:  time.Millisecond,
		DefaultPageSize:  10,
	}
}

// TestBuildHandler_EndToEnd drives the full register, post, list, reply
// flow through the assembled router.
func TestBuildHandler_EndToEnd(t *testing.T) {
	db := testutil.SetupTestDB(t)
	deps := DBDeps{
		AskBoxMongoClient:   db.Client(),
		AskBoxMongoDatabase: db,
	}

	handler, err := BuildHandler(&config.CoreConfig{}, testAppConfig(), deps, zap.NewNop())
	if err != nil {
		t.Fatalf("BuildHandler failed: %v", err)
	}
	srv := httptest.NewServer(handler)
	defer srv.Close()

	post := func(path string, body map[string]any) *http.Response {
		t.Helper()
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding body for %s: %v", path, err)
		}
		resp, err := srv.Client().Post(srv.URL+path, "application/json", bytes.NewReader(payload))
		if err != nil {
			t.Fatalf("POST %s failed: %v", path, err)
		}
		return resp
	}
	get := func(path string) *http.Response {
		t.Helper()
		resp, err := srv.Client().Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s failed: %v", path, err)
		}
		return resp
	}

	// Register a member.
	resp := post("/api/members", map[string]any{
		"uid":         "u1",
		"email":       "alice@gmail.com",
		"displayName": "Alice",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	resp.Body.Close()

	// Look the member up by derived screen name.
	resp = get("/api/members/screen-name/alice")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("screen-name lookup: status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var member struct {
		UID string `json:"uid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&member); err != nil {
		t.Fatalf("decoding member: %v", err)
	}
	resp.Body.Close()
	if member.UID != "u1" {
		t.Fatalf("uid = %q, want u1", member.UID)
	}

	// Post a message into the box.
	resp = post("/api/members/u1/messages", map[string]any{"message": "hello there"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("post message: status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	resp.Body.Close()

	// Read it back through the paged listing.
	resp = get("/api/members/u1/messages?page=1&size=10")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("paged list: status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var page struct {
		TotalElements int64 `json:"totalElements"`
		TotalPages    int64 `json:"totalPages"`
		Content       []struct {
			ID        string `json:"id"`
			MessageNo int64  `json:"messageNo"`
			Message   string `json:"message"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decoding page: %v", err)
	}
	resp.Body.Close()
	if page.TotalElements != 1 || page.TotalPages != 1 || len(page.Content) != 1 {
		t.Fatalf("page = %+v, want one message on one page", page)
	}
	if page.Content[0].MessageNo != 1 {
		t.Errorf("messageNo = %d, want 1", page.Content[0].MessageNo)
	}

	// Reply to it, then confirm the second reply is refused.
	msgID := page.Content[0].ID
	resp = post("/api/members/u1/messages/"+msgID+"/reply", map[string]any{"reply": "hi"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("reply: status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	resp.Body.Close()

	resp = post("/api/members/u1/messages/"+msgID+"/reply", map[string]any{"reply": "again"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second reply: status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}
	resp.Body.Close()

	// Health endpoints.
	resp = get("/health/live")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("live: status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	resp.Body.Close()
	resp = get("/health/ready")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("ready: status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	resp.Body.Close()
}

func TestValidateConfig(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *AppConfig) {}},
		{name: "bad uri", mutate: func(c *AppConfig) { c.MongoURI = "http://nope" }, wantErr: true},
		{name: "zero attempts", mutate: func(c *AppConfig) { c.TxnMaxAttempts = 0 }, wantErr: true},
		{name: "negative backoff", mutate: func(c *AppConfig) { c.TxnRetryBackoff = -time.Second }, wantErr: true},
		{name: "zero page size", mutate: func(c *AppConfig) { c.DefaultPageSize = 0 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testAppConfig()
			cfg.MongoURI = "mongodb://localhost:27017"
			tt.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{}, cfg, logger)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
