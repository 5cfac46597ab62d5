package handlers

import (
	"errors"
	"net/http"
	"strings"

	"mancala_arena/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateRoomRequest struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

type JoinRoomRequest struct {
	Code       string `json:"code"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// CreateRoom opens a new room with the caller in the first seat and returns
// it, shareable code included.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	playerID := callerID(c, req.PlayerID)
	if playerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player_id required"})
		return
	}

	room, err := h.Rooms.CreateRoom(playerID, strings.TrimSpace(req.PlayerName))
	if err != nil {
		if errors.Is(err, service.ErrCodeGenerationExhausted) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not allocate a room code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"room": room})
}

// JoinRoom seats the caller in the room addressed by code. When the second
// seat fills, the game starts and the response carries the initial state.
func (h *Handler) JoinRoom(c *gin.Context) {
	var req JoinRoomRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	playerID := callerID(c, req.PlayerID)
	if playerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player_id required"})
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code required"})
		return
	}

	room, err := h.Rooms.JoinRoom(req.Code, playerID, strings.TrimSpace(req.PlayerName))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, service.ErrRoomFull):
			c.JSON(http.StatusConflict, gin.H{"error": "room is full"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join room"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"room": room})
}

// GetRoomByCode returns the current room snapshot, used by clients to poll
// before their websocket session is up.
func (h *Handler) GetRoomByCode(c *gin.Context) {
	room, err := h.Rooms.GetRoomByCode(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}
