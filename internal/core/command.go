package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom subscribes the connection to a room.
	CommandJoinRoom CommandKind = iota
	// CommandLeaveRoom unsubscribes the connection from a room.
	CommandLeaveRoom
	// CommandSendMessage posts a chat message to room participants.
	CommandSendMessage
	// CommandTyping relays a typing indicator to room participants.
	CommandTyping
)

// Command represents an action requested by a client. Sender identity travels
// with each command because the wire protocol carries it per event.
type Command struct {
	Kind         CommandKind
	Room         string
	Text         string
	SenderName   string
	SenderAvatar string
}
