package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/voyago/citychat-server/internal/store"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind, wait time.Duration) {
	t.Helper()

	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v received: %+v", kind, ev)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// memStore is an in-memory store.MessageStore for hub tests.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	msgs   []store.Message
}

func newMemStore() *memStore {
	return &memStore{}
}

func (m *memStore) SaveMessage(_ context.Context, msg store.Message) (*store.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	msg.ID = m.nextID
	m.msgs = append(m.msgs, msg)
	return &msg, nil
}

func (m *memStore) MessagesByRoom(_ context.Context, roomID string, limit int) ([]store.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []store.Message
	for _, msg := range m.msgs {
		if msg.RoomID == roomID {
			out = append(out, msg)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *memStore) saved() []store.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]store.Message(nil), m.msgs...)
}

// failStore rejects every operation.
type failStore struct{}

func (failStore) SaveMessage(context.Context, store.Message) (*store.Message, error) {
	return nil, errors.New("save failed")
}

func (failStore) MessagesByRoom(context.Context, string, int) ([]store.Message, error) {
	return nil, errors.New("query failed")
}

// recordNotifier captures infraction reports.
type recordNotifier struct {
	reports chan string
}

func newRecordNotifier() *recordNotifier {
	return &recordNotifier{reports: make(chan string, 8)}
}

func (n *recordNotifier) NotifyInfraction(_ context.Context, _ string, originalText string, _ time.Time) error {
	n.reports <- originalText
	return nil
}
