package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends
const (
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Runtime holds process settings read from the environment. CLI flags
// override them.
type Runtime struct {
	Store       string        `env:"CULTIVATION_STORE" envDefault:"sqlite"`
	RedisAddr   string        `env:"CULTIVATION_REDIS_ADDR" envDefault:"localhost:6379"`
	SQLitePath  string        `env:"CULTIVATION_SQLITE_PATH" envDefault:"cultivation.db"`
	PlayerKey   string        `env:"CULTIVATION_PLAYER_KEY" envDefault:"player"`
	GameData    string        `env:"CULTIVATION_GAME_DATA"`
	Seed        uint64        `env:"CULTIVATION_SEED"`
	LogLevel    string        `env:"CULTIVATION_LOG_LEVEL" envDefault:"info"`
	SaveTimeout time.Duration `env:"CULTIVATION_SAVE_TIMEOUT" envDefault:"5s"`
}

// ParseEnv loads runtime settings from environment variables
func ParseEnv() (Runtime, error) {
	var rt Runtime
	if err := env.Parse(&rt); err != nil {
		return rt, fmt.Errorf("parse env: %w", err)
	}
	return rt, nil
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info
func (r Runtime) SlogLevel() slog.Level {
	switch strings.ToLower(r.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
