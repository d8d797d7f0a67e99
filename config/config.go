package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Realtime RealtimeConfig
}

type ServerConfig struct {
	Port            string
	Env             string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RateLimit       int
	RateLimitWindow time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// JWTConfig covers verification of identity tokens presented on the realtime
// channel. Tokens are issued elsewhere; this service only parses them.
type JWTConfig struct {
	Secret string
	Issuer string
}

type RealtimeConfig struct {
	SendBufferSize  int
	ReadBufferSize  int
	WriteBufferSize int
	WriteWait       time.Duration
	PongWait        time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            envStr("SERVER_PORT", "8085"),
			Env:             envStr("SERVER_ENV", "development"),
			ReadTimeout:     envDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    envDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			RateLimit:       envInt("SERVER_RATE_LIMIT", 100),
			RateLimitWindow: envDuration("SERVER_RATE_LIMIT_WINDOW", time.Minute),
		},
		Database: DatabaseConfig{
			DSN:             envStr("DATABASE_DSN", "tracker:tracker@tcp(localhost:3306)/campuseats?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", time.Hour),
		},
		JWT: JWTConfig{
			Secret: envStr("JWT_SECRET", "change-me-in-production"),
			Issuer: envStr("JWT_ISSUER", "campus-eats"),
		},
		Realtime: RealtimeConfig{
			SendBufferSize:  envInt("WS_SEND_BUFFER", 256),
			ReadBufferSize:  envInt("WS_READ_BUFFER", 1024),
			WriteBufferSize: envInt("WS_WRITE_BUFFER", 1024),
			WriteWait:       envDuration("WS_WRITE_WAIT", 10*time.Second),
			PongWait:        envDuration("WS_PONG_WAIT", 60*time.Second),
		},
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
