// horde is a real-time arena shooter for the terminal: hold out against
// endless waves of zombies, alone or over SSH.
//
// Usage:
//
//	horde play              - Play in this terminal
//	horde serve             - Start SSH server for remote play
//	horde scores            - Show high scores
//	horde config            - Print the default settings file
//
// Global flags:
//
//	--config <path>     - Settings file (default: search ~/.horde/configs, ./configs)
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.horde/scores.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/horde/internal/config"
	"github.com/vovakirdan/horde/internal/horde"
	"github.com/vovakirdan/horde/internal/intel"
	"github.com/vovakirdan/horde/internal/telemetry"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "horde",
	Short: "Horde - Survive the waves in your terminal",
	Long: `Horde is a top-down wave shooter played in the terminal.
Move with WASD or the arrow keys, aim with the mouse and hold the line
while each wave grows larger, faster and tougher.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the default settings file

Examples:
  horde play
  horde play --seed 42
  horde serve --ssh :2222
  horde scores --limit 20`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a settings YAML file")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.horde/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings loads the settings file and applies explicitly set flags.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	s, err := config.Load(flagConfig)
	if err != nil {
		return s, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		s.Game.TickRate = flagFPS
	}
	if flags.Changed("seed") {
		s.Game.Seed = flagSeed
	}
	if flags.Changed("db") {
		s.Storage.Path = flagDBPath
	}
	if flags.Changed("log-level") {
		s.Log.Level = flagLogLevel
	}

	return s, s.Validate()
}

// newLogger creates the application logger writing to w.
func newLogger(s config.LogSettings, w io.Writer) *log.Logger {
	level, err := log.ParseLevel(s.Level)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "horde",
		Level:           level,
	})
}

// openLogFile opens the log file for appending. An empty path discards logs.
func openLogFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{io.Discard}, nil
	}
	path = config.ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// newBriefer picks the briefing source from the settings.
func newBriefer(s config.IntelSettings, logger *log.Logger) *intel.Briefer {
	var source intel.Source = intel.Offline{}
	switch {
	case s.Online():
		g, err := intel.NewGemini(context.Background(), intel.GeminiConfig{
			Endpoint:   s.Endpoint,
			APIVersion: s.APIVersion,
			Model:      s.Model,
			APIKey:     s.APIKey(),
			Timeout:    s.Timeout,
		})
		if err != nil {
			logger.Warn("wave briefings disabled", "err", err)
			break
		}
		source = g
		logger.Debug("wave briefings enabled", "model", s.Model)
	case s.Enabled:
		logger.Info("no API key set, wave briefings use the fallback report", "env", s.APIKeyEnv)
	}
	return intel.NewBriefer(source, s.Timeout, logger)
}

// newMetrics builds the gameplay counters, exporting them to w when the
// settings enable it. The returned provider must be shut down on exit.
func newMetrics(s config.MetricsSettings, w io.Writer, logger *log.Logger) (*horde.Metrics, *telemetry.Provider) {
	provider, err := telemetry.New(telemetry.Config{
		Enabled:     s.Enabled,
		ServiceName: "horde",
		Interval:    s.Interval,
		Writer:      w,
	})
	if err != nil {
		logger.Warn("metrics export disabled", "error", err)
		provider, _ = telemetry.New(telemetry.Config{})
	}

	metrics, err := horde.NewMetrics(provider.MeterProvider())
	if err != nil {
		logger.Warn("metrics disabled", "error", err)
	}
	return metrics, provider
}
