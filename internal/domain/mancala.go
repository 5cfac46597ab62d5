package domain

// Player identifies one of the two seats at the board.
type Player int

const (
	Player1 Player = 1
	Player2 Player = 2
)

// Opponent returns the other seat.
func (p Player) Opponent() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func (p Player) Valid() bool {
	return p == Player1 || p == Player2
}

// GameStatus - lifecycle of a game instance
type GameStatus string

const (
	StatusPlaying  GameStatus = "playing"
	StatusFinished GameStatus = "finished"
)

// Winner of a finished game; empty while the game is running.
type Winner string

const (
	WinnerNone    Winner = ""
	WinnerPlayer1 Winner = "player1"
	WinnerPlayer2 Winner = "player2"
	WinnerTie     Winner = "tie"
)

// WinnerOf maps a seat to its winner value.
func WinnerOf(p Player) Winner {
	if p == Player1 {
		return WinnerPlayer1
	}
	return WinnerPlayer2
}

// LastMove records the most recently applied move.
type LastMove struct {
	Player   Player `json:"player"`
	PitIndex int    `json:"pit_index"`
}

// GameState is the full authoritative state of one mancala game.
//
// Board layout: indices 0-5 are player 1 pits, 6 is player 1's store,
// 7-12 are player 2 pits, 13 is player 2's store. The sum across all 14
// slots is always 48 for any reachable state.
type GameState struct {
	Board         [14]int    `json:"board"`
	CurrentPlayer Player     `json:"current_player"`
	Status        GameStatus `json:"status"`
	Winner        Winner     `json:"winner,omitempty"`
	LastMove      *LastMove  `json:"last_move,omitempty"`
}

// Clone returns an independent copy.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	cp := *s
	if s.LastMove != nil {
		lm := *s.LastMove
		cp.LastMove = &lm
	}
	return &cp
}
