package handlers

import (
	"net/http"

	"mancala_arena/internal/domain"
	"mancala_arena/internal/game"

	"github.com/gin-gonic/gin"
)

type AIMoveRequest struct {
	GameState  *domain.GameState `json:"game_state"`
	Difficulty string            `json:"difficulty"`
}

// AIMove picks a pit for the current player of the submitted position. The
// endpoint is stateless: clients running a solo game own the state and
// apply the returned move themselves.
func (h *Handler) AIMove(c *gin.Context) {
	var req AIMoveRequest
	if err := c.BindJSON(&req); err != nil || req.GameState == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if !req.GameState.CurrentPlayer.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid current player"})
		return
	}

	difficulty, ok := game.ParseDifficulty(req.Difficulty)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown difficulty"})
		return
	}

	pit := game.SelectMove(req.GameState, difficulty)
	if pit == game.NoMove {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no legal moves"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pit_index":  pit,
		"difficulty": string(difficulty),
	})
}
