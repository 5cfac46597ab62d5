package http

import (
	"time"

	"mancala_arena/internal/config"
	"mancala_arena/internal/http/handlers"
	"mancala_arena/internal/http/middleware"
	"mancala_arena/internal/service"
	"mancala_arena/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the HTTP surface: health probes, the versioned room
// and game API, and the websocket endpoint. db may be nil when the archive
// is disabled.
func RegisterRoutes(r *gin.Engine, rooms *service.RoomService, hub *ws.Hub, db *pgxpool.Pool, version string, cfg *config.Config) {
	h := handlers.NewHandler(rooms)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	rateWindow := time.Duration(cfg.APIRateWindow) * time.Second

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(cfg.APIRateLimit, rateWindow))
	v1.Use(middleware.GuestIdentity())
	{
		v1.POST("/auth/guest", h.GuestAuth)

		v1.POST("/rooms", h.CreateRoom)
		v1.POST("/rooms/join", h.JoinRoom)
		v1.GET("/rooms/:code", h.GetRoomByCode)

		v1.POST("/game/ai-move", h.AIMove)
	}

	// Upgrade attempts are limited in process: a websocket is per-instance
	// state, so a shared counter buys nothing here.
	gateway := ws.NewGateway(rooms, hub)
	r.GET("/ws", middleware.LocalRateLimit(30, time.Minute), h.WS(hub, gateway))
}
