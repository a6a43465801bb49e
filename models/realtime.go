package models

import "encoding/json"

// EventType identifies a realtime channel frame.
type EventType string

// Realtime frame types delivered to (or expected from) a connected
// secondary client.
const (
	EventAuth EventType = "auth"

	EventNoteCreated EventType = "note:created"
	EventNoteUpdated EventType = "note:updated"
	EventNoteDeleted EventType = "note:deleted"

	EventThreadCreated EventType = "thread:created"
	EventThreadUpdated EventType = "thread:updated"
	EventThreadDeleted EventType = "thread:deleted"

	EventSessionExpired EventType = "session:expired"

	EventPing EventType = "ping"
	EventPong EventType = "pong"
)

// RealtimeMessage is one frame on the realtime channel. Token is set only
// on the auth frame the client sends immediately after the socket opens;
// the transport-level connection itself is not authenticated.
type RealtimeMessage struct {
	Type    EventType       `json:"type"`
	Token   string          `json:"token,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
