package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/platform/tui"
	"github.com/vovakirdan/horde/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  WASD/Arrows  - Move
  Mouse        - Aim
  Click/Space  - Fire
  1/2/3        - Pistol / Shotgun / Rifle
  Enter        - Start, continue after a briefing, retry
  Esc          - Back to menu after game over
  Tab          - High scores (from the menu)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Logs go to the file configured under log.file so they do not
disturb the game screen.

Examples:
  horde play
  horde play --seed 42 --fps 30
  horde play --config ./horde.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	settings, err := loadSettings(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logFile, err := openLogFile(settings.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := newLogger(settings.Log, logFile)

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: settings.Game.TickRate,
		Seed:     settings.Game.Seed,
	}

	// Open score storage
	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	metrics, provider := newMetrics(settings.Metrics, logFile, logger)
	defer provider.Shutdown(context.Background())

	player := os.Getenv("USER")
	opts := tui.Options{
		Store:   store,
		Briefer: newBriefer(settings.Intel, logger),
		Metrics: metrics,
		Logger:  logger,
		Player:  player,
	}

	runErr := tui.Run(opts, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
