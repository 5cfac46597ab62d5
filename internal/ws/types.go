package ws

import "encoding/json"

const (
	// client -> server
	EventJoinRoom  = "join-room"
	EventLeaveRoom = "leave-room"
	EventMakeMove  = "make-move"

	// server -> client
	EventRoomSnapshot = "room-snapshot"
	EventGameStarted  = "game-started"
	EventStateUpdate  = "state-update"
	EventGameOver     = "game-over"
	EventMoveRejected = "move-rejected"
)

// Message is the wire envelope in both directions.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// envelope is the inbound form, payload left raw until the type is known.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}
