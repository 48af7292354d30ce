package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snakeboard/internal/config"
	"github.com/vovakirdan/snakeboard/internal/core"
	"github.com/vovakirdan/snakeboard/internal/platform/tui"
	"github.com/vovakirdan/snakeboard/internal/storage"
)

var (
	flagDifficulty string
	flagUsername   string
	flagOffline    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake in this terminal",
	Long: `Start a game of snake.

Controls:
  Arrows/WASD/HJKL - Steer
  P/Space          - Pause
  R                - Restart
  Q/Ctrl+C         - Quit

After a game you can save your score under a name of up to 10 characters.
Scores go to the local database, or to --server when one is set.

Difficulty options:
  easy   - Slower start, higher speed floor
  normal - 120ms per tick, 5ms faster every 50 points, never below 50ms
  hard   - Faster start, speeds up twice as quickly
  fixed  - Constant speed

Examples:
  snakeboard play
  snakeboard play --difficulty hard
  snakeboard play --name ACE --server http://localhost:8080
  snakeboard play --seed 42 --offline`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagUsername, "name", "", "Name to prefill when saving a score")
	playCmd.Flags().BoolVar(&flagOffline, "offline", false, "Play without saving scores")
}

func runPlay(cmd *cobra.Command, _ []string) {
	if err := play(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play(cmd *cobra.Command) error {
	cfg := loadConfig(cmd)
	logger := newLogger(cfg)

	if flagDifficulty != "" {
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return err
		}
		cfg.Game.Difficulty = preset
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	var lb storage.Leaderboard
	if !flagOffline {
		backend, err := openLeaderboard(cfg)
		if err != nil {
			logger.Warn("Leaderboard unavailable, scores will not be saved", "err", err)
		} else {
			defer backend.Close()
			lb = storage.FailSoft(backend, logger)
		}
	}

	opts := tui.Options{
		Grid:  cfg.Game.Grid(),
		Speed: cfg.Game.EffectiveSpeed(),
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    cfg.Game.Seed,
		},
		Username:    flagUsername,
		Leaderboard: lb,
	}

	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
