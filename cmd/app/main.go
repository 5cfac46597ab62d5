package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mancala_arena/internal/config"
	"mancala_arena/internal/db"
	httpServer "mancala_arena/internal/http"
	"mancala_arena/internal/http/middleware"
	"mancala_arena/internal/logger"
	"mancala_arena/internal/repository"
	"mancala_arena/internal/service"
	"mancala_arena/internal/store"
	"mancala_arena/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT()

	// The archive is optional: without DATABASE_URL games live only in
	// memory and vanish with the room sweep.
	var dbPool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			logger.Fatal("database connection failed", "error", err)
		}
		dbPool = pool
		defer dbPool.Close()
	}

	hub := ws.NewHub()
	rooms := service.NewRoomService(store.NewMemoryStore(), hub, service.Config{
		CodeLength:    cfg.RoomCodeLength,
		CodeAttempts:  cfg.RoomCodeAttempts,
		Retention:     time.Duration(cfg.RoomRetention) * time.Minute,
		SweepInterval: time.Duration(cfg.RoomSweepEvery) * time.Minute,
	})
	if dbPool != nil {
		rooms.SetArchive(repository.NewArchiveRepository(dbPool))
	}
	rooms.StartSweeper()
	defer rooms.Stop()

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (cfg.AllowedOrigin == "" || origin == cfg.AllowedOrigin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	httpServer.RegisterRoutes(r, rooms, hub, dbPool, version, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "archive", dbPool != nil)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
