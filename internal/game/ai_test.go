package game

import (
	"testing"

	"mancala_arena/internal/domain"
)

func TestSelectMoveNoMoves(t *testing.T) {
	s := stateWithBoard([14]int{0, 0, 0, 0, 0, 0, 24, 4, 4, 4, 4, 4, 4, 0}, domain.Player1)
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if got := SelectMove(s, d); got != NoMove {
			t.Fatalf("%s: SelectMove = %d; want NoMove", d, got)
		}
	}
}

func TestSelectMoveEasyIsLegal(t *testing.T) {
	s := NewGameState()
	for i := 0; i < 100; i++ {
		pit := SelectMove(s, DifficultyEasy)
		if !IsOwnPit(s.CurrentPlayer, pit) || s.Board[pit] == 0 {
			t.Fatalf("easy picked illegal pit %d", pit)
		}
	}
}

func TestSelectMoveMediumPrefersExtraTurn(t *testing.T) {
	// Pit 2 (4 seeds) ends in the store; every alternative just sows.
	s := stateWithBoard([14]int{4, 0, 4, 0, 0, 1, 0, 4, 4, 4, 4, 4, 4, 0}, domain.Player1)
	if got := SelectMove(s, DifficultyMedium); got != 2 {
		t.Fatalf("medium move = %d; want 2 (extra turn)", got)
	}
}

func TestSelectMoveMediumPrefersCapture(t *testing.T) {
	// Pit 4 captures the 8 seeds opposite pit 5; pit 0 is a plain sow.
	s := stateWithBoard([14]int{2, 0, 0, 0, 1, 0, 0, 8, 1, 1, 1, 1, 1, 0}, domain.Player1)
	if got := SelectMove(s, DifficultyMedium); got != 4 {
		t.Fatalf("medium move = %d; want 4 (capture)", got)
	}
}

func TestSelectMoveMediumFirstSeenTieBreak(t *testing.T) {
	// Symmetric candidates score identically; the lowest pit wins.
	s := stateWithBoard([14]int{1, 0, 1, 0, 0, 0, 10, 4, 4, 4, 4, 4, 4, 10}, domain.Player1)
	first := SelectMove(s, DifficultyMedium)
	for i := 0; i < 10; i++ {
		if got := SelectMove(s, DifficultyMedium); got != first {
			t.Fatalf("medium tie-break not deterministic: %d then %d", first, got)
		}
	}
}

func TestSelectMoveHardIsLegal(t *testing.T) {
	s := NewGameState()
	s.CurrentPlayer = domain.Player2
	pit := SelectMove(s, DifficultyHard)
	if !IsOwnPit(domain.Player2, pit) || s.Board[pit] == 0 {
		t.Fatalf("hard picked illegal pit %d", pit)
	}
}

func TestSelectMoveHardTakesWinningMove(t *testing.T) {
	// Playing pit 5 empties player 1's side and wins on the sweep; any
	// other move hands the fat pit 7 to the opponent.
	s := stateWithBoard([14]int{0, 0, 0, 0, 0, 1, 25, 10, 0, 0, 0, 0, 0, 12}, domain.Player1)
	if got := SelectMove(s, DifficultyHard); got != 5 {
		t.Fatalf("hard move = %d; want 5 (immediate win)", got)
	}
}

func TestEvaluateTerminal(t *testing.T) {
	finished := &domain.GameState{
		Status: domain.StatusFinished,
		Winner: domain.WinnerPlayer1,
	}
	if got := evaluate(finished, domain.Player1); got != 1000 {
		t.Fatalf("evaluate(win) = %d; want 1000", got)
	}
	if got := evaluate(finished, domain.Player2); got != -1000 {
		t.Fatalf("evaluate(loss) = %d; want -1000", got)
	}
	finished.Winner = domain.WinnerTie
	if got := evaluate(finished, domain.Player1); got != 0 {
		t.Fatalf("evaluate(tie) = %d; want 0", got)
	}
}

func TestEvaluatePositional(t *testing.T) {
	s := stateWithBoard([14]int{1, 1, 1, 0, 0, 0, 10, 4, 0, 0, 0, 0, 0, 6}, domain.Player1)
	// store diff 4, own pits 3
	if got := evaluate(s, domain.Player1); got != 43 {
		t.Fatalf("evaluate = %d; want 43", got)
	}
	// mirrored for player 2: store diff -4, own pits 4
	if got := evaluate(s, domain.Player2); got != -36 {
		t.Fatalf("evaluate = %d; want -36", got)
	}
}

func TestParseDifficulty(t *testing.T) {
	if d, ok := ParseDifficulty("hard"); !ok || d != DifficultyHard {
		t.Fatalf("ParseDifficulty(hard) = %v %v", d, ok)
	}
	if _, ok := ParseDifficulty("impossible"); ok {
		t.Fatal("unknown difficulty accepted")
	}
}
