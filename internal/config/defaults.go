package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/snakeboard/internal/core"
	"github.com/vovakirdan/snakeboard/internal/games/snake"
)

//go:embed defaults/snakeboard.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the built-in configuration. It matches the embedded YAML
// and is used when that cannot be parsed.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
			RateLimit:   RateLimitConfig{RPS: 2, Burst: 5},
			Metrics:     true,
			MaxSessions: 256,
		},
		SSH: SSHConfig{
			Addr:    ":2222",
			HostKey: "~/.snakeboard/host_key",
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    "~/.snakeboard/scores.db",
		},
		Client: ClientConfig{
			Timeout: 5 * time.Second,
		},
		Game: GameConfig{
			BoardPx:    core.DefaultBoardPixels,
			CellPx:     core.DefaultCellPixels,
			Difficulty: DifficultyNormal,
			Speed:      snake.DefaultSpeed(),
		},
		Log: LogConfig{Level: "info"},
	}
}
