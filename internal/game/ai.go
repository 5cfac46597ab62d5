package game

import (
	"math"
	"math/rand"

	"mancala_arena/internal/domain"
)

// Difficulty selects the strength of the computer opponent.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// NoMove is returned when the mover has no legal pit to choose.
const NoMove = -1

// hardSearchDepth is the nominal ply depth of the hard search. Extra-turn
// chains re-enter the search at the same depth, so a branch with chained
// extra turns can effectively look further ahead than this.
const hardSearchDepth = 4

func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), true
	default:
		return "", false
	}
}

// SelectMove picks a pit for the state's current player. Unknown
// difficulties fall back to easy.
func SelectMove(s *domain.GameState, difficulty Difficulty) int {
	moves := AvailableMoves(s)
	if len(moves) == 0 {
		return NoMove
	}

	switch difficulty {
	case DifficultyMedium:
		return mediumMove(s, moves)
	case DifficultyHard:
		return hardMove(s, moves)
	default:
		return moves[rand.Intn(len(moves))]
	}
}

// mediumMove scores each candidate one ply deep: extra turns and captures
// are rewarded, the post-move store difference counts positionally, and
// every immediate opponent reply that would itself grant an extra turn or a
// capture is penalized. Ties resolve to the first candidate seen.
func mediumMove(s *domain.GameState, moves []int) int {
	mover := s.CurrentPlayer
	best := moves[0]
	bestScore := math.MinInt

	for _, move := range moves {
		res, err := ApplyMove(s, move)
		if err != nil {
			continue
		}

		score := 0
		if res.ExtraTurn {
			score += 100
		}
		if res.Captured {
			score += 50
		}
		score += 10 * storeDiff(res.State, mover)

		if !res.GameOver {
			// Peek at the opponent's immediate replies on the post-move
			// board, even when an extra turn kept the mover's turn.
			oppState := withCurrentPlayer(res.State, mover.Opponent())
			for _, reply := range AvailableMoves(oppState) {
				oppRes, err := ApplyMove(oppState, reply)
				if err != nil {
					continue
				}
				if oppRes.ExtraTurn {
					score -= 30
				}
				if oppRes.Captured {
					score -= 20
				}
			}
		}

		if score > bestScore {
			bestScore = score
			best = move
		}
	}
	return best
}

// hardMove runs a fixed-depth minimax with alpha-beta pruning. A simulated
// move that grants an extra turn re-enters the search at the same depth for
// the same maximizing side.
func hardMove(s *domain.GameState, moves []int) int {
	mover := s.CurrentPlayer
	best := moves[0]
	bestScore := math.MinInt

	for _, move := range moves {
		res, err := ApplyMove(s, move)
		if err != nil {
			continue
		}
		depth := hardSearchDepth - 1
		if res.ExtraTurn {
			depth = hardSearchDepth
		}
		score := minimax(res.State, depth, res.ExtraTurn, math.MinInt, math.MaxInt, mover)
		if score > bestScore {
			bestScore = score
			best = move
		}
	}
	return best
}

func minimax(s *domain.GameState, depth int, maximizing bool, alpha, beta int, root domain.Player) int {
	if depth == 0 || s.Status == domain.StatusFinished {
		return evaluate(s, root)
	}
	moves := AvailableMoves(s)
	if len(moves) == 0 {
		return evaluate(s, root)
	}

	if maximizing {
		value := math.MinInt
		for _, move := range moves {
			res, err := ApplyMove(s, move)
			if err != nil {
				continue
			}
			childDepth := depth - 1
			childMax := false
			if res.ExtraTurn {
				childDepth = depth
				childMax = true
			}
			v := minimax(res.State, childDepth, childMax, alpha, beta, root)
			if v > value {
				value = v
			}
			if v > alpha {
				alpha = v
			}
			if beta <= alpha {
				break
			}
		}
		return value
	}

	value := math.MaxInt
	for _, move := range moves {
		res, err := ApplyMove(s, move)
		if err != nil {
			continue
		}
		childDepth := depth - 1
		childMax := true
		if res.ExtraTurn {
			childDepth = depth
			childMax = false
		}
		v := minimax(res.State, childDepth, childMax, alpha, beta, root)
		if v < value {
			value = v
		}
		if v < beta {
			beta = v
		}
		if beta <= alpha {
			break
		}
	}
	return value
}

// evaluate scores a state from the root player's point of view: terminal
// states are worth ±1000 (0 for a tie), otherwise 10x the store difference
// plus the seeds still sitting in the player's own pits.
func evaluate(s *domain.GameState, player domain.Player) int {
	if s.Status == domain.StatusFinished {
		switch s.Winner {
		case domain.WinnerOf(player):
			return 1000
		case domain.WinnerTie:
			return 0
		default:
			return -1000
		}
	}

	lo := 0
	if player == domain.Player2 {
		lo = 7
	}
	ownPits := 0
	for i := lo; i < lo+6; i++ {
		ownPits += s.Board[i]
	}
	return 10*storeDiff(s, player) + ownPits
}

func storeDiff(s *domain.GameState, player domain.Player) int {
	d := s.Board[Store1] - s.Board[Store2]
	if player == domain.Player2 {
		return -d
	}
	return d
}

func withCurrentPlayer(s *domain.GameState, p domain.Player) *domain.GameState {
	cp := s.Clone()
	cp.CurrentPlayer = p
	return cp
}
