package store

import (
	"context"
	"time"
)

// Message is a persisted chat message. Messages are written once and never
// mutated or deleted by the chat subsystem.
type Message struct {
	ID           int64
	RoomID       string
	SenderName   string
	SenderAvatar string
	Content      string
	Flagged      bool // content was sanitized before storage
	CreatedAt    time.Time
}

// MessageStore is the persistence collaborator for room chat.
type MessageStore interface {
	// SaveMessage persists a message and returns the stored record.
	SaveMessage(ctx context.Context, msg Message) (*Message, error)

	// MessagesByRoom returns up to limit messages for a room, ascending by
	// creation time. limit <= 0 means no limit.
	MessagesByRoom(ctx context.Context, roomID string, limit int) ([]Message, error)
}

// Store is the full storage surface the application wires up.
type Store interface {
	MessageStore

	Close() error
}
