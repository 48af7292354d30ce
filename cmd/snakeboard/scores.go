package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snakeboard/internal/platform/tui"
	"github.com/vovakirdan/snakeboard/internal/storage"
)

var (
	flagScoresTUI bool
	flagLimit     int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the top scores",
	Long: `Display the best scores, highest first. Equal scores are listed in
the order they were recorded.

Examples:
  snakeboard scores
  snakeboard scores --tui
  snakeboard scores --server http://localhost:8080`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Show an interactive leaderboard")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", storage.DefaultLimit, "Number of scores to show")
}

func runScores(cmd *cobra.Command, _ []string) {
	if err := showScores(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showScores(cmd *cobra.Command) error {
	cfg := loadConfig(cmd)

	lb, err := openLeaderboard(cfg)
	if err != nil {
		return fmt.Errorf("opening leaderboard: %w", err)
	}
	defer lb.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(lb, width, height)
	}

	scores, err := lb.TopScores(context.Background(), flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println("High Scores - Snake")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snakeboard play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10s  %-8d  %s\n", i+1, entry.Username, entry.Score, entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
