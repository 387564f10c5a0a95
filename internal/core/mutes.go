package core

import (
	"sync"
	"time"
)

// MuteStore holds per-connection mute expiries. A connection has at most one
// active record; expired records are deleted lazily on the next lookup.
type MuteStore struct {
	mu    sync.Mutex
	until map[string]time.Time
}

// NewMuteStore constructs an empty mute store.
func NewMuteStore() *MuteStore {
	return &MuteStore{until: make(map[string]time.Time)}
}

// Mute creates or overwrites the record for a connection, expiring duration
// from now. Repeated mutes reset the window, they do not compound.
func (s *MuteStore) Mute(connectionID string, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.until[connectionID] = time.Now().Add(duration)
}

// IsMuted reports whether the connection is muted at the given instant and,
// if so, the remaining time rounded up to whole seconds. An expired record is
// removed as a side effect.
func (s *MuteStore) IsMuted(connectionID string, now time.Time) (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.until[connectionID]
	if !ok {
		return false, 0
	}
	if !until.After(now) {
		delete(s.until, connectionID)
		return false, 0
	}

	remaining := until.Sub(now)
	seconds := int((remaining + time.Second - 1) / time.Second)
	return true, seconds
}

// Clear removes the record unconditionally. Used on disconnect.
func (s *MuteStore) Clear(connectionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.until, connectionID)
}
