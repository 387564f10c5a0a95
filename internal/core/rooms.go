package core

import "sync"

// Registry tracks which connections belong to which room. It is shared by all
// sessions, so every access goes through the mutex; membership for a given
// connection is only ever mutated by the session that owns it.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

// NewRegistry constructs an empty room registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]map[*Client]struct{})}
}

// Join adds a connection to a room's member set. Joining twice is a no-op.
func (r *Registry) Join(c *Client, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		r.rooms[room] = members
	}
	members[c] = struct{}{}
}

// Leave removes a connection from a room. Absent membership is not an error.
// Empty rooms are dropped from the map.
func (r *Registry) Leave(c *Client, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(c, room)
}

// LeaveAll removes a connection from every room it joined.
func (r *Registry) LeaveAll(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for room := range r.rooms {
		r.leaveLocked(c, room)
	}
}

func (r *Registry) leaveLocked(c *Client, room string) {
	members, ok := r.rooms[room]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(r.rooms, room)
	}
}

// Broadcast delivers an event to every current member of a room, optionally
// excluding one connection. Members whose event buffer is full or who are
// gone are silently skipped.
func (r *Registry) Broadcast(room string, event *Event, exclude *Client) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for member := range r.rooms[room] {
		if member == exclude {
			continue
		}
		deliver(member, event)
	}
}

// Send unicasts an event to one connection, failing silently if it is gone.
func (r *Registry) Send(c *Client, event *Event) {
	deliver(c, event)
}

func deliver(c *Client, event *Event) {
	select {
	case c.Events <- event:
	default:
		// Drop if slow consumer.
	}
}
