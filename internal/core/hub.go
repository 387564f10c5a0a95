package core

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/voyago/citychat-server/internal/log"
	"github.com/voyago/citychat-server/internal/moderation"
	"github.com/voyago/citychat-server/internal/notify"
	"github.com/voyago/citychat-server/internal/store"
)

// HubOptions carries the hub's collaborators. Store and Notifier may be nil,
// in which case persistence and infraction reporting are skipped.
type HubOptions struct {
	Store        store.MessageStore
	Notifier     notify.Notifier
	Filter       moderation.Filter
	Policy       moderation.Policy
	HistoryLimit int
	Logger       *zerolog.Logger
}

// Hub is the connection front door: it owns the room registry and the mute
// store, and runs one session per registered client. Session lifecycle is
// tied 1:1 to connection lifetime.
type Hub struct {
	registry *Registry
	mutes    *MuteStore
	store    store.MessageStore
	notifier notify.Notifier
	filter   moderation.Filter
	policy   moderation.Policy

	historyLimit int
	log          *zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// NewHub creates a hub with the given collaborators.
func NewHub(opts HubOptions) *Hub {
	if opts.Logger == nil {
		opts.Logger = log.Nop()
	}
	if opts.Filter == nil {
		opts.Filter, _ = moderation.NewWordFilter(nil, '*')
	}
	if opts.Policy == (moderation.Policy{}) {
		opts.Policy = moderation.DefaultPolicy()
	}

	return &Hub{
		registry:     NewRegistry(),
		mutes:        NewMuteStore(),
		store:        opts.Store,
		notifier:     opts.Notifier,
		filter:       opts.Filter,
		policy:       opts.Policy,
		historyLimit: opts.HistoryLimit,
		log:          opts.Logger,
		sessions:     make(map[string]*session),
	}
}

// RegisterClient starts a session draining the client's commands.
func (h *Hub) RegisterClient(c *Client) {
	s := newSession(h, c)

	h.mu.Lock()
	h.sessions[c.ID] = s
	h.mu.Unlock()

	go s.run()
}

// UnregisterClient tears down the client's session. Idempotent; commands
// arriving for the connection afterwards are never processed.
func (h *Hub) UnregisterClient(c *Client) {
	h.mu.Lock()
	s, ok := h.sessions[c.ID]
	delete(h.sessions, c.ID)
	h.mu.Unlock()

	if ok {
		s.stop()
	}
}

// Run blocks until the context is cancelled, then stops every session.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	sessions := make([]*session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.sessions = make(map[string]*session)
	h.mu.Unlock()

	for _, s := range sessions {
		s.stop()
	}
}
