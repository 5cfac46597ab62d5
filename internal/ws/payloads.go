package ws

import "mancala_arena/internal/domain"

// client -> server

type JoinRoomPayload struct {
	RoomID string `json:"room_id"`
}

type LeaveRoomPayload struct {
	RoomID string `json:"room_id"`
}

type MakeMovePayload struct {
	RoomID   string `json:"room_id"`
	PitIndex int    `json:"pit_index"`
	RoomCode string `json:"room_code,omitempty"`
	PlayerID string `json:"player_id"`
}

// server -> client

type GameStartedPayload struct {
	GameState *domain.GameState `json:"game_state"`
}

type StateUpdatePayload struct {
	GameState *domain.GameState `json:"game_state"`
	ExtraTurn bool              `json:"extra_turn"`
	Captured  bool              `json:"captured"`
}

type GameOverPayload struct {
	Winner     domain.Winner     `json:"winner"`
	FinalState *domain.GameState `json:"final_state"`
}

type MoveRejectedPayload struct {
	Message string `json:"message"`
}
