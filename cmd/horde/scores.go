package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/horde/internal/platform/tui"
	"github.com/vovakirdan/horde/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best runs recorded in the scores database.

Examples:
  horde scores
  horde scores --limit 25
  horde scores --tui
  horde scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores in an interactive table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run")
}

func runScores(cmd *cobra.Command, _ []string) {
	settings, err := loadSettings(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All runs deleted.")
		return

	case flagScoresTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.TopRuns(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Horde")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'horde play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-5s  %-12s  %s\n", "Rank", "Score", "Wave", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %-12s  %s\n", "----", "-----", "----", "------", "----")

	// Print runs
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-5d  %-12s  %s\n", i+1, r.Score, r.Wave, player, dateStr)
	}

	// Show records
	fmt.Println()
	if best, err := store.HighScore(); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	if wave, err := store.BestWave(); err == nil {
		fmt.Printf("Furthest wave: %d\n", wave)
	}
}
