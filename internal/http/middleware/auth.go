package middleware

import (
	"strings"

	"mancala_arena/internal/service"

	"github.com/gin-gonic/gin"
)

// GuestIdentity reads an optional bearer token and, when valid, stores the
// player id in the request context. It never rejects: guest tokens are a
// convenience, requests may name the player in the body instead.
func GuestIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if playerID, err := service.ParseGuestToken(token); err == nil {
				c.Set("player_id", playerID)
			}
		}
		c.Next()
	}
}
