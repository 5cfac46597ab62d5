package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort       string
	AllowedOrigin string
	DatabaseURL   string // optional, enables the finished-game archive
	LogLevel      string
	LogJSON       bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Room lifecycle
	RoomCodeLength   int
	RoomCodeAttempts int
	RoomRetention    int // minutes
	RoomSweepEvery   int // minutes

	// Rate limiting
	APIRateLimit  int
	APIRateWindow int // seconds
}

func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:       port,
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogJSON:       os.Getenv("LOG_JSON") == "true",

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		RoomCodeLength:   envInt("ROOM_CODE_LENGTH", 6),
		RoomCodeAttempts: envInt("ROOM_CODE_ATTEMPTS", 100),
		RoomRetention:    envInt("ROOM_RETENTION_MINUTES", 60),
		RoomSweepEvery:   envInt("ROOM_SWEEP_MINUTES", 30),

		APIRateLimit:  envInt("API_RATE_LIMIT", 60),
		APIRateWindow: envInt("API_RATE_WINDOW_SECONDS", 60),
	}
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
