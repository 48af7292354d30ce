package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables applied on top of the loaded file.
const (
	EnvAddr      = "SNAKEBOARD_ADDR"
	EnvDBDriver  = "SNAKEBOARD_DB_DRIVER"
	EnvDBDSN     = "SNAKEBOARD_DB_DSN"
	EnvServerURL = "SNAKEBOARD_SERVER_URL"
	EnvLogLevel  = "SNAKEBOARD_LOG_LEVEL"
	EnvRateRPS   = "SNAKEBOARD_RATE_RPS"
	EnvSeed      = "SNAKEBOARD_SEED"
)

// Load reads the configuration.
// Search order: customPath -> ~/.snakeboard/config.yaml -> ./configs/snakeboard.yaml -> embedded default.
// Values missing from a file keep their defaults. Environment overrides are
// applied last.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	if err := cfg.normalize(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(), filepath.Join("configs", "snakeboard.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := Default()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil
	}
	return cfg, nil
}

// userConfigPath returns the per-user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snakeboard", "config.yaml")
}

func applyEnv(cfg *Config) {
	cfg.Server.Addr = getEnv(EnvAddr, cfg.Server.Addr)
	cfg.Storage.Driver = getEnv(EnvDBDriver, cfg.Storage.Driver)
	cfg.Storage.DSN = getEnv(EnvDBDSN, cfg.Storage.DSN)
	cfg.Client.ServerURL = getEnv(EnvServerURL, cfg.Client.ServerURL)
	cfg.Log.Level = getEnv(EnvLogLevel, cfg.Log.Level)
	cfg.Server.RateLimit.RPS = getEnvFloat(EnvRateRPS, cfg.Server.RateLimit.RPS)
	cfg.Game.Seed = int64(getEnvInt(EnvSeed, int(cfg.Game.Seed)))
}

// normalize fills zero values and rejects settings nothing can run with.
func (c *Config) normalize() error {
	defaults := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = defaults.Storage.Driver
	}
	if c.Client.Timeout <= 0 {
		c.Client.Timeout = defaults.Client.Timeout
	}
	if c.Game.BoardPx <= 0 {
		c.Game.BoardPx = defaults.Game.BoardPx
	}
	if c.Game.CellPx <= 0 {
		c.Game.CellPx = defaults.Game.CellPx
	}
	if c.Game.Speed.BaseMs <= 0 || c.Game.Speed.FloorMs <= 0 {
		c.Game.Speed = defaults.Game.Speed
	}

	preset, err := ParseDifficulty(string(c.Game.Difficulty))
	if err != nil {
		return err
	}
	c.Game.Difficulty = preset

	if c.Server.RateLimit.RPS < 0 {
		return fmt.Errorf("config: rate_limit.rps must not be negative")
	}
	if c.Server.RateLimit.Burst < 1 {
		c.Server.RateLimit.Burst = 1
	}
	return nil
}

func getEnv(name, fallback string) string {
	if val := os.Getenv(name); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(name string, fallback int) int {
	val := os.Getenv(name)
	if val == "" {
		return fallback
	}
	intVal, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return fallback
	}
	return int(intVal)
}

func getEnvFloat(name string, fallback float64) float64 {
	val := os.Getenv(name)
	if val == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return f
}
