// Package realtime is the WebSocket notification channel: a hub that fans
// change events out to every connected client and to clients that joined a
// named room (one room per resource kind, e.g. "projects" or "food").
//
// Delivery is fire-and-forget. There is no buffering beyond a small
// per-client send queue, no replay for late joiners, and no acknowledgment;
// a client that cannot keep up is disconnected.
package realtime

import "time"

// Event is the JSON payload pushed to clients.
type Event struct {
	Event     string    `json:"event"`
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
	Room      string    `json:"room,omitempty"`
	UserID    string    `json:"userId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent builds an Event stamped with the current time.
func NewEvent(name, message string, data any) Event {
	return Event{Event: name, Message: message, Data: data, Timestamp: time.Now().UTC()}
}

// Inbound client commands.
const (
	ActionJoinRoom    = "joinRoom"
	ActionLeaveRoom   = "leaveRoom"
	ActionSendMessage = "sendMessage"
)

// command is a message received from a client.
type command struct {
	Action   string `json:"action"`
	Room     string `json:"room,omitempty"`
	Message  string `json:"message,omitempty"`
	Username string `json:"username,omitempty"`
}
