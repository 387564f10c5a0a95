package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/voyago/citychat-server/internal/config"
	"github.com/voyago/citychat-server/internal/core"
	"github.com/voyago/citychat-server/internal/log"
	"github.com/voyago/citychat-server/internal/store"
	"github.com/voyago/citychat-server/internal/store/sqlite"
)

func newTestServer(t *testing.T, st store.MessageStore) *stdhttp.Server {
	t.Helper()

	hub := core.NewHub(core.HubOptions{Store: st, Logger: log.Nop()})
	return NewServer(hub, st, config.Config{HistoryLimit: 50}, log.Nop())
}

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("create test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// brokenStore rejects every query.
type brokenStore struct{}

func (brokenStore) SaveMessage(context.Context, store.Message) (*store.Message, error) {
	return nil, errors.New("db is down")
}

func (brokenStore) MessagesByRoom(context.Context, string, int) ([]store.Message, error) {
	return nil, errors.New("db is down")
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t, newTestStore(t))

	req := httptest.NewRequest(stdhttp.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	server.Handler.ServeHTTP(resp, req)

	if resp.Code != stdhttp.StatusOK {
		t.Errorf("expected status 200, got %d", resp.Code)
	}
	if resp.Body.String() != "ok" {
		t.Errorf("expected body %q, got %q", "ok", resp.Body.String())
	}
}

func TestListRoomMessages(t *testing.T) {
	st := newTestStore(t)

	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seed := []store.Message{
		{RoomID: "paris", SenderName: "alice", SenderAvatar: "a.png", Content: "bonjour", CreatedAt: base},
		{RoomID: "paris", SenderName: "bob", Content: "*******", Flagged: true, CreatedAt: base.Add(time.Minute)},
		{RoomID: "rome", SenderName: "carol", Content: "ciao", CreatedAt: base},
	}
	for _, msg := range seed {
		if _, err := st.SaveMessage(ctx, msg); err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}

	server := newTestServer(t, st)

	req := httptest.NewRequest(stdhttp.MethodGet, "/api/rooms/paris/messages", nil)
	resp := httptest.NewRecorder()
	server.Handler.ServeHTTP(resp, req)

	if resp.Code != stdhttp.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var messages []MessageResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].SenderName != "alice" || messages[0].Content != "bonjour" || messages[0].SenderAvatar != "a.png" {
		t.Errorf("unexpected first message: %+v", messages[0])
	}
	if messages[0].Timestamp != base.UnixMilli() {
		t.Errorf("expected timestamp %d, got %d", base.UnixMilli(), messages[0].Timestamp)
	}
	if messages[1].SenderName != "bob" || !messages[1].Flagged {
		t.Errorf("unexpected second message: %+v", messages[1])
	}
}

func TestListRoomMessagesEmptyRoom(t *testing.T) {
	server := newTestServer(t, newTestStore(t))

	req := httptest.NewRequest(stdhttp.MethodGet, "/api/rooms/nowhere/messages", nil)
	resp := httptest.NewRecorder()
	server.Handler.ServeHTTP(resp, req)

	if resp.Code != stdhttp.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != "[]" {
		t.Errorf("expected empty array, got %q", body)
	}
}

func TestListRoomMessagesStoreError(t *testing.T) {
	server := newTestServer(t, brokenStore{})

	req := httptest.NewRequest(stdhttp.MethodGet, "/api/rooms/paris/messages", nil)
	resp := httptest.NewRecorder()
	server.Handler.ServeHTTP(resp, req)

	if resp.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Error != "internal server error" {
		t.Errorf("unexpected error body: %q", errResp.Error)
	}
}
