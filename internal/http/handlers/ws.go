package handlers

import (
	"net/http"
	"os"

	"mancala_arena/internal/logger"
	"mancala_arena/internal/service"
	"mancala_arena/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WS upgrades the request and starts the client pumps. A guest token in the
// query binds the connection to that player; connections without one are
// still accepted, their move payloads just have to name the player.
func (h *Handler) WS(hub *ws.Hub, gateway *ws.Gateway) gin.HandlerFunc {
	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		var playerID string
		if token := c.Query("token"); token != "" {
			id, err := service.ParseGuestToken(token)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			playerID = id
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "error", err)
			return
		}

		client := ws.NewClient(conn, hub, gateway, playerID)
		go client.Run()
	}
}
