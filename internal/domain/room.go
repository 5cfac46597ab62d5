package domain

import "time"

// Room pairs two players with one shared game instance. It is addressed by
// an opaque id and by a short human-shareable code.
//
// GameState is nil until both player slots are filled and is constructed
// exactly once, when the second distinct player joins.
type Room struct {
	ID           string     `json:"id"`
	Code         string     `json:"code"`
	Player1ID    string     `json:"player1_id"`
	Player2ID    string     `json:"player2_id,omitempty"`
	Player1Name  string     `json:"player1_name"`
	Player2Name  string     `json:"player2_name,omitempty"`
	GameState    *GameState `json:"game_state"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActivity time.Time  `json:"last_activity_at"`
}

// Full reports whether both player slots are taken.
func (r *Room) Full() bool {
	return r.Player1ID != "" && r.Player2ID != ""
}

// SeatOf returns the seat a player id occupies, or 0 when the id matches
// neither slot.
func (r *Room) SeatOf(playerID string) Player {
	switch {
	case playerID != "" && playerID == r.Player1ID:
		return Player1
	case playerID != "" && playerID == r.Player2ID:
		return Player2
	default:
		return 0
	}
}

// Clone returns a deep copy, safe to hand to other goroutines.
func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	cp := *r
	cp.GameState = r.GameState.Clone()
	return &cp
}

// GameRecord is the archive row written when a game finishes.
type GameRecord struct {
	ID          int64     `db:"id"`
	RoomID      string    `db:"room_id"`
	RoomCode    string    `db:"room_code"`
	Player1ID   string    `db:"player1_id"`
	Player2ID   string    `db:"player2_id"`
	Player1Name string    `db:"player1_name"`
	Player2Name string    `db:"player2_name"`
	Winner      Winner    `db:"winner"`
	Store1      int       `db:"store1"`
	Store2      int       `db:"store2"`
	FinishedAt  time.Time `db:"finished_at"`
}
