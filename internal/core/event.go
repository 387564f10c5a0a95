package core

import "github.com/voyago/citychat-server/internal/store"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventRoomMessage notifies room members about a delivered chat message.
	EventRoomMessage EventKind = iota
	// EventTyping relays a typing indicator to room members.
	EventTyping
	// EventHistory delivers message history to a client upon joining a room.
	EventHistory
	// EventWarning privately warns a sender after repeated profanity.
	EventWarning
	// EventMuted privately informs a sender that posting is suspended.
	EventMuted
	// EventMutedCountdown carries the seconds remaining on a mute.
	EventMutedCountdown
	// EventError notifies a client about a domain error.
	EventError
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind     EventKind
	Room     string
	User     string          // sender display name, for typing
	Message  *store.Message  // for EventRoomMessage
	Messages []store.Message // for EventHistory
	Text     string          // for EventWarning and EventMuted
	Seconds  int             // for EventMutedCountdown
	Error    *CoreError
}
