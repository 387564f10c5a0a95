package core

// Client is one live connection as seen by the core layer. A connection id is
// owned by exactly one client for its lifetime; the identity is ephemeral and
// dies with the connection.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 8),
	}
}
