// snakeboard is a terminal snake game with a shared leaderboard service.
//
// Usage:
//
//	snakeboard play               - Play in this terminal
//	snakeboard serve              - Start the leaderboard HTTP API (and optional SSH server)
//	snakeboard scores             - Show the top ten scores
//	snakeboard submit <name> <n>  - Record a score by hand
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.snakeboard/config.yaml)
//	--seed <value>      - RNG seed for reproducible food placement
//	--db-driver <name>  - Storage driver: sqlite, postgres, memory
//	--db <dsn>          - Storage DSN (default: ~/.snakeboard/scores.db)
//	--server <url>      - Use a remote leaderboard instead of local storage
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakeboard/internal/client"
	"github.com/vovakirdan/snakeboard/internal/config"
	"github.com/vovakirdan/snakeboard/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBDriver string
	flagDBPath   string
	flagServer   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snakeboard",
	Short: "Snakeboard - Snake in your terminal with a shared leaderboard",
	Long: `Snakeboard is a classic snake game for the terminal backed by a
small leaderboard service.

Available commands:
  play     - Play a game in this terminal
  serve    - Start the leaderboard API (and optional SSH server)
  scores   - View the top ten scores
  submit   - Record a score

Examples:
  snakeboard play
  snakeboard play --difficulty hard
  snakeboard serve --addr :8080 --ssh :2222
  snakeboard scores --server http://localhost:8080`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBDriver, "db-driver", "", "Storage driver: "+strings.Join(storage.Drivers(), ", "))
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Storage DSN (sqlite path or postgres URL)")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "Leaderboard server URL (empty = local storage)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(submitCmd)
}

// loadConfig reads the config file and environment, then applies any
// global flags the user set explicitly.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Game.Seed = flagSeed
	}
	if flags.Changed("db-driver") {
		cfg.Storage.Driver = flagDBDriver
	}
	if flags.Changed("db") {
		cfg.Storage.DSN = flagDBPath
	}
	if flags.Changed("server") {
		cfg.Client.ServerURL = flagServer
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	return cfg
}

func newLogger(cfg config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "snakeboard",
	})
	logger.SetLevel(cfg.Log.ParsedLevel())
	return logger
}

// openLeaderboard returns the remote leaderboard when a server URL is
// configured, otherwise the local store named by the storage config.
func openLeaderboard(cfg config.Config) (storage.Leaderboard, error) {
	if cfg.Client.ServerURL != "" {
		return client.New(cfg.Client.ServerURL, cfg.Client.Timeout), nil
	}
	return storage.Open(cfg.Storage.Driver, cfg.Storage.DSN)
}
