package http

import (
	"bytes"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/parlorchat/parlor/internal/chat"
	"github.com/parlorchat/parlor/internal/config"
	"github.com/parlorchat/parlor/internal/router"
)

func newTestServer(cfg *config.Config) *stdhttp.Server {
	users := chat.NewUserRegistry()
	rooms := chat.NewRoomRegistry()
	logger := zerolog.Nop()
	rt := router.New(users, rooms, &logger)
	return NewServer(rt, cfg, &logger)
}

func testConfig() *config.Config {
	return &config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
		MaxBodyBytes:      1 << 20,
		LogLevel:          "info",
	}
}

func do(server *stdhttp.Server, method, path, auth, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("auth", auth)
	}
	resp := httptest.NewRecorder()
	server.Handler.ServeHTTP(resp, req)
	return resp
}

func TestChatFlow(t *testing.T) {
	server := newTestServer(testConfig())

	// Register a user.
	resp := do(server, stdhttp.MethodPost, "/users", "", `{"name":"Ann"}`)
	if resp.Code != stdhttp.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var registered router.Envelope
	if err := json.Unmarshal(resp.Body.Bytes(), &registered); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if registered.Status != router.StatusOK {
		t.Errorf("expected status OK, got %s", registered.Status)
	}
	if registered.User == nil || registered.User.Name != "Ann" {
		t.Fatalf("unexpected user payload: %+v", registered.User)
	}
	userID := registered.User.ID

	// Create a room.
	resp = do(server, stdhttp.MethodPost, "/rooms", userID, `{"name":"Lobby"}`)
	if resp.Code != stdhttp.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"messages":[]`) {
		t.Errorf("new room must render an empty message list, got %s", resp.Body.String())
	}

	var created router.Envelope
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if created.Room == nil || created.Room.Name != "Lobby" {
		t.Fatalf("unexpected room payload: %+v", created.Room)
	}
	roomID := created.Room.ID

	// Post a message.
	resp = do(server, stdhttp.MethodPost, "/rooms/"+roomID+"/messages", userID, `{"message":"hi"}`)
	if resp.Code != stdhttp.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `{"username":"Ann","message":"hi"}`) {
		t.Errorf("expected message entry in response, got %s", resp.Body.String())
	}

	// Read the room back.
	resp = do(server, stdhttp.MethodGet, "/rooms/"+roomID, userID, "")
	if resp.Code != stdhttp.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var fetched router.Envelope
	if err := json.Unmarshal(resp.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(fetched.Room.Messages) != 1 || fetched.Room.Messages[0].Username != "Ann" || fetched.Room.Messages[0].Message != "hi" {
		t.Errorf("unexpected messages: %+v", fetched.Room.Messages)
	}

	// Listing without the auth header is rejected.
	resp = do(server, stdhttp.MethodGet, "/rooms", "", "")
	if resp.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
	want := `{"status":"UNAUTHORIZED","error_message":"Unauthorized"}`
	if strings.TrimSpace(resp.Body.String()) != want {
		t.Errorf("expected %s, got %s", want, resp.Body.String())
	}

	// Listing with the auth header strips messages.
	resp = do(server, stdhttp.MethodGet, "/rooms", userID, "")
	if resp.Code != stdhttp.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "messages") {
		t.Errorf("room list must not carry messages, got %s", resp.Body.String())
	}
}

func TestUnregisterFlow(t *testing.T) {
	server := newTestServer(testConfig())

	resp := do(server, stdhttp.MethodPost, "/users", "", `{"name":"Ben"}`)
	if resp.Code != stdhttp.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var registered router.Envelope
	if err := json.Unmarshal(resp.Body.Bytes(), &registered); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	userID := registered.User.ID

	resp = do(server, stdhttp.MethodDelete, "/users", userID, "")
	if resp.Code != stdhttp.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if strings.TrimSpace(resp.Body.String()) != `{"status":"OK"}` {
		t.Errorf("unregister must return an empty-payload envelope, got %s", resp.Body.String())
	}

	// The stale id no longer authenticates.
	resp = do(server, stdhttp.MethodGet, "/users", userID, "")
	if resp.Code != stdhttp.StatusUnauthorized {
		t.Errorf("expected status 401 for unregistered id, got %d", resp.Code)
	}
}

func TestStatusCodeMapping(t *testing.T) {
	server := newTestServer(testConfig())

	resp := do(server, stdhttp.MethodPost, "/users", "", `{"name":"Ann"}`)
	var registered router.Envelope
	if err := json.Unmarshal(resp.Body.Bytes(), &registered); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	userID := registered.User.ID

	cases := []struct {
		name   string
		method string
		path   string
		auth   string
		body   string
		want   int
	}{
		{"unknown path", stdhttp.MethodGet, "/nope", userID, "", stdhttp.StatusNotFound},
		{"malformed room id", stdhttp.MethodGet, "/rooms/not-a-valid-id", userID, "", stdhttp.StatusNotFound},
		{"missing room", stdhttp.MethodGet, "/rooms/2b9e7a20-9f5d-4a57-92f1-0123456789ab", userID, "", stdhttp.StatusNotFound},
		{"bad body", stdhttp.MethodPost, "/rooms", userID, `{"name":""}`, stdhttp.StatusBadRequest},
		{"no auth", stdhttp.MethodGet, "/rooms", "", "", stdhttp.StatusUnauthorized},
	}

	for _, tc := range cases {
		resp := do(server, tc.method, tc.path, tc.auth, tc.body)
		if resp.Code != tc.want {
			t.Errorf("%s: expected status %d, got %d: %s", tc.name, tc.want, resp.Code, resp.Body.String())
		}
	}
}

func TestBodySizeCap(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBodyBytes = 64
	server := newTestServer(cfg)

	oversized := `{"name":"` + strings.Repeat("x", 128) + `"}`
	resp := do(server, stdhttp.MethodPost, "/users", "", oversized)
	if resp.Code != stdhttp.StatusBadRequest {
		t.Errorf("expected status 400 for oversized body, got %d", resp.Code)
	}
}

func TestHealth(t *testing.T) {
	server := newTestServer(testConfig())

	resp := do(server, stdhttp.MethodGet, "/health", "", "")
	if resp.Code != stdhttp.StatusOK {
		t.Errorf("expected status 200, got %d", resp.Code)
	}
	if resp.Body.String() != "ok" {
		t.Errorf("expected body 'ok', got %q", resp.Body.String())
	}
}
