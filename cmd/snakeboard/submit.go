package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakeboard/internal/storage"
)

var submitCmd = &cobra.Command{
	Use:   "submit <name> <score>",
	Short: "Record a score",
	Long: `Record a score on the leaderboard. Names are trimmed, upper-cased and
limited to 10 characters. Scores must be non-negative integers.

Examples:
  snakeboard submit ace 120
  snakeboard submit ace 120 --server http://localhost:8080`,
	Args: cobra.ExactArgs(2),
	Run:  runSubmit,
}

func runSubmit(cmd *cobra.Command, args []string) {
	score, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: score must be a non-negative integer, got %q\n", args[1])
		os.Exit(1)
	}

	if err := submit(cmd, args[0], score); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func submit(cmd *cobra.Command, username string, score int) error {
	cfg := loadConfig(cmd)

	lb, err := openLeaderboard(cfg)
	if err != nil {
		return fmt.Errorf("opening leaderboard: %w", err)
	}
	defer lb.Close()

	record, err := lb.SubmitScore(context.Background(), username, score)
	if err != nil {
		if storage.IsValidation(err) {
			return err
		}
		return fmt.Errorf("saving score: %w", err)
	}

	fmt.Printf("Saved %s: %d (#%d)\n", record.Username, record.Score, record.ID)
	return nil
}
