package handlers

import (
	"strings"

	"mancala_arena/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Rooms *service.RoomService
}

func NewHandler(rooms *service.RoomService) *Handler {
	return &Handler{Rooms: rooms}
}

// callerID resolves the acting player: the request body wins, then the
// identity the auth middleware extracted from a bearer token.
func callerID(c *gin.Context, bodyID string) string {
	if id := strings.TrimSpace(bodyID); id != "" {
		return id
	}
	if v, ok := c.Get("player_id"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
