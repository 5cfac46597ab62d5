package game

import (
	"errors"

	"mancala_arena/internal/domain"
)

var ErrInvalidMove = errors.New("invalid move")

const (
	BoardSize   = 14
	Store1      = 6  // player 1's store
	Store2      = 13 // player 2's store
	SeedsPerPit = 4
	TotalSeeds  = 48
)

// MoveResult carries the outcome of one applied move.
type MoveResult struct {
	State     *domain.GameState
	ExtraTurn bool
	Captured  bool
	GameOver  bool
	Winner    domain.Winner
}

// NewGameState returns the initial state: 4 seeds in each of the 12 pits,
// empty stores, player 1 (the room creator) to move. This constructor is the
// only place an initial current player is decided.
func NewGameState() *domain.GameState {
	s := &domain.GameState{
		CurrentPlayer: domain.Player1,
		Status:        domain.StatusPlaying,
	}
	for i := 0; i < BoardSize; i++ {
		if i != Store1 && i != Store2 {
			s.Board[i] = SeedsPerPit
		}
	}
	return s
}

// StoreIndex returns the store slot for a seat.
func StoreIndex(p domain.Player) int {
	if p == domain.Player1 {
		return Store1
	}
	return Store2
}

// IsOwnPit reports whether idx is one of p's six sowing pits.
func IsOwnPit(p domain.Player, idx int) bool {
	if p == domain.Player1 {
		return idx >= 0 && idx <= 5
	}
	return idx >= 7 && idx <= 12
}

// OppositePit maps a pit to the pit directly across the board, or -1 for
// store indices. The two halves mirror across the 12-index axis.
func OppositePit(idx int) int {
	if (idx >= 0 && idx <= 5) || (idx >= 7 && idx <= 12) {
		return 12 - idx
	}
	return -1
}

// AvailableMoves lists the mover's non-empty pits in ascending order.
func AvailableMoves(s *domain.GameState) []int {
	var moves []int
	lo := 0
	if s.CurrentPlayer == domain.Player2 {
		lo = 7
	}
	for i := lo; i < lo+6; i++ {
		if s.Board[i] > 0 {
			moves = append(moves, i)
		}
	}
	return moves
}

// ApplyMove sows the chosen pit for the state's current player and returns
// the resulting state. It is a pure function: the input state is never
// mutated, and equal inputs always produce equal outputs.
//
// Returns ErrInvalidMove when the pit is outside the mover's own range or
// currently empty.
func ApplyMove(s *domain.GameState, pitIndex int) (MoveResult, error) {
	mover := s.CurrentPlayer
	if !IsOwnPit(mover, pitIndex) || s.Board[pitIndex] == 0 {
		return MoveResult{}, ErrInvalidMove
	}

	board := s.Board
	seeds := board[pitIndex]
	board[pitIndex] = 0

	ownStore := StoreIndex(mover)
	skipStore := StoreIndex(mover.Opponent())

	// Sow counter-clockwise, skipping the opponent's store.
	idx := pitIndex
	for seeds > 0 {
		idx = (idx + 1) % BoardSize
		if idx == skipStore {
			continue
		}
		board[idx]++
		seeds--
	}

	extraTurn := idx == ownStore

	// Capture: last seed landed in an own pit that was empty before it.
	captured := false
	if !extraTurn && IsOwnPit(mover, idx) && board[idx] == 1 {
		opp := OppositePit(idx)
		if opp != -1 && board[opp] > 0 {
			board[ownStore] += board[opp] + 1
			board[opp] = 0
			board[idx] = 0
			captured = true
		}
	}

	// End of game: either side's six pits simultaneously empty. The side
	// still holding seeds sweeps them into its own store.
	gameOver, winner := settleIfOver(&board)

	next := mover
	if !extraTurn {
		next = mover.Opponent()
	}

	status := domain.StatusPlaying
	if gameOver {
		status = domain.StatusFinished
	}

	result := MoveResult{
		State: &domain.GameState{
			Board:         board,
			CurrentPlayer: next,
			Status:        status,
			Winner:        winner,
			LastMove:      &domain.LastMove{Player: mover, PitIndex: pitIndex},
		},
		ExtraTurn: extraTurn,
		Captured:  captured,
		GameOver:  gameOver,
		Winner:    winner,
	}
	return result, nil
}

func settleIfOver(board *[14]int) (bool, domain.Winner) {
	p1Empty := sideSum(board, 0) == 0
	p2Empty := sideSum(board, 7) == 0
	if !p1Empty && !p2Empty {
		return false, domain.WinnerNone
	}

	if p1Empty {
		board[Store2] += sideSum(board, 7)
		clearSide(board, 7)
	} else {
		board[Store1] += sideSum(board, 0)
		clearSide(board, 0)
	}

	switch {
	case board[Store1] > board[Store2]:
		return true, domain.WinnerPlayer1
	case board[Store2] > board[Store1]:
		return true, domain.WinnerPlayer2
	default:
		return true, domain.WinnerTie
	}
}

func sideSum(board *[14]int, lo int) int {
	sum := 0
	for i := lo; i < lo+6; i++ {
		sum += board[i]
	}
	return sum
}

func clearSide(board *[14]int, lo int) {
	for i := lo; i < lo+6; i++ {
		board[i] = 0
	}
}
