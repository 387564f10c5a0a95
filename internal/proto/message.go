package proto

import "encoding/json"

// Inbound is the envelope for frames coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoinRoom  = "joinRoom"
	InboundTypeLeaveRoom = "leaveRoom"
	InboundTypeChat      = "chatMessage"
	InboundTypeTyping    = "typing"

	OutboundTypeChat           = "chatMessage"
	OutboundTypeTyping         = "typing"
	OutboundTypeWarning        = "warning"
	OutboundTypeMuted          = "muted"
	OutboundTypeMutedCountdown = "mutedCountdown"
	OutboundTypeHistory        = "history"
	OutboundTypeError          = "error"
)

// JoinRoomData requests to join (or leave) a specific room.
type JoinRoomData struct {
	Room string `json:"room"`
}

// ChatMessageData is a chat message from the client.
type ChatMessageData struct {
	Room      string `json:"room"`
	Text      string `json:"text"`
	UserName  string `json:"userName"`
	AvatarURL string `json:"avatarUrl"`
}

// TypingData signals that a user is composing a message.
type TypingData struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

// Outbound is the envelope for frames sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// EventChatMessage is a delivered room message.
type EventChatMessage struct {
	SenderName   string `json:"senderName"`
	SenderAvatar string `json:"senderAvatar"`
	Content      string `json:"content"`
	Timestamp    int64  `json:"timestamp"`
}

// EventTyping relays a typing indicator.
type EventTyping struct {
	Username string `json:"username"`
}

// EventNotice carries private moderation feedback (warning, muted).
type EventNotice struct {
	Message string `json:"message"`
}

// EventMutedCountdown carries the seconds remaining on an active mute.
type EventMutedCountdown struct {
	Seconds int `json:"seconds"`
}

// EventHistory delivers a room's persisted messages, oldest first.
type EventHistory struct {
	Room     string             `json:"room"`
	Messages []EventChatMessage `json:"messages"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
