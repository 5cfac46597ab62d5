package handlers

import (
	"net/http"
	"strings"

	"mancala_arena/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GuestAuthRequest struct {
	Name string `json:"name"`
}

// GuestAuth mints an anonymous player identity. No registration: the
// returned id is what room and move requests carry, the token lets the
// websocket endpoint bind the connection to the same identity.
func (h *Handler) GuestAuth(c *gin.Context) {
	var req GuestAuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Guest"
	}
	if len(name) > 32 {
		name = name[:32]
	}

	playerID := uuid.NewString()
	token, err := service.GenerateGuestToken(playerID, name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"player_id": playerID,
		"name":      name,
	})
}
