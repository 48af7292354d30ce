// Package config provides YAML-based configuration for the snakeboard
// server, client and terminal game.
package config

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snakeboard/internal/core"
	"github.com/vovakirdan/snakeboard/internal/games/snake"
)

// Config is the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	SSH     SSHConfig     `yaml:"ssh"`
	Storage StorageConfig `yaml:"storage"`
	Client  ClientConfig  `yaml:"client"`
	Game    GameConfig    `yaml:"game"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig controls the HTTP leaderboard service.
type ServerConfig struct {
	Addr        string          `yaml:"addr"`
	CORSOrigins []string        `yaml:"cors_origins"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	Metrics     bool            `yaml:"metrics"`
	MaxSessions int             `yaml:"max_sessions"` // Live websocket games, 0 = unlimited
}

// RateLimitConfig limits score submissions per client IP.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"` // 0 disables limiting
	Burst int     `yaml:"burst"`
}

// SSHConfig controls the optional wish server.
type SSHConfig struct {
	Addr    string `yaml:"addr"`
	HostKey string `yaml:"host_key"`
}

// StorageConfig selects the leaderboard backend.
type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite, postgres or memory
	DSN    string `yaml:"dsn"`
}

// ClientConfig points the terminal game at a remote leaderboard.
// An empty ServerURL means the local store is used directly.
type ClientConfig struct {
	ServerURL string        `yaml:"server_url"`
	Timeout   time.Duration `yaml:"timeout"`
}

// GameConfig holds the simulation parameters.
type GameConfig struct {
	BoardPx    int               `yaml:"board_px"`
	CellPx     int               `yaml:"cell_px"`
	Seed       int64             `yaml:"seed"` // 0 = time-based
	Difficulty DifficultyPreset  `yaml:"difficulty"`
	Speed      snake.SpeedConfig `yaml:"speed"`
}

// Grid returns the board derived from the pixel sizes.
func (g GameConfig) Grid() core.Grid {
	return core.GridFromPixels(g.BoardPx, g.CellPx)
}

// EffectiveSpeed returns the speed ramp with the difficulty preset applied.
func (g GameConfig) EffectiveSpeed() snake.SpeedConfig {
	return ApplySpeedPreset(g.Speed, g.Difficulty)
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// ParsedLevel returns the configured level, falling back to info.
func (l LogConfig) ParsedLevel() log.Level {
	level, err := log.ParseLevel(l.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
