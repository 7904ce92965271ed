package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/horde/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the horde SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. Scores are stored per-server
(all users share the same leaderboard) under their SSH user name.

Host key handling:
  - If --host-key or ssh.host_key is set, uses that key file
  - Otherwise, auto-generates a key at ~/.horde/ssh_host_ed25519

Examples:
  horde serve                           # Listen on ssh.address (default :2222)
  horde serve --ssh :23234              # Listen on port 23234
  horde serve --host-key ./my_host_key  # Use specific host key
  horde serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().StringVar(&flagIdleTimeout, "idle-timeout", "", "Idle timeout before disconnecting (e.g. 10m)")
}

func runServe(cmd *cobra.Command, _ []string) {
	settings, err := loadSettings(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.SSHServerConfigFrom(settings)
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout != "" {
		d, parseErr := time.ParseDuration(flagIdleTimeout)
		if parseErr != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid --idle-timeout: %v\n", parseErr)
			os.Exit(1)
		}
		cfg.IdleTimeout = d
	}

	logger := newLogger(settings.Log, os.Stderr)

	metrics, provider := newMetrics(settings.Metrics, os.Stderr, logger)
	defer provider.Shutdown(context.Background())

	server, err := tui.NewSSHServer(cfg, newBriefer(settings.Intel, logger), metrics, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting horde SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
