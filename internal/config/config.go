// Package config provides YAML-based settings loading for horde.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Settings is the full settings file.
type Settings struct {
	Game    GameSettings    `yaml:"game"`
	Log     LogSettings     `yaml:"log"`
	Storage StorageSettings `yaml:"storage"`
	Intel   IntelSettings   `yaml:"intel"`
	SSH     SSHSettings     `yaml:"ssh"`
	Metrics MetricsSettings `yaml:"metrics"`
}

// GameSettings controls the simulation driver.
type GameSettings struct {
	TickRate int   `yaml:"tick_rate"`
	Seed     int64 `yaml:"seed"` // 0 = random based on time
}

// LogSettings controls the application logger.
type LogSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Used in TUI mode; empty disables file logging
}

// StorageSettings locates the high-score database.
type StorageSettings struct {
	Path string `yaml:"path"`
}

// IntelSettings configures the wave briefing service.
type IntelSettings struct {
	Enabled    bool          `yaml:"enabled"`
	Endpoint   string        `yaml:"endpoint"`
	APIVersion string        `yaml:"api_version"`
	Model      string        `yaml:"model"`
	APIKeyEnv  string        `yaml:"api_key_env"` // Environment variable holding the key
	Timeout    time.Duration `yaml:"timeout"`
}

// APIKey reads the key from the configured environment variable.
func (s IntelSettings) APIKey() string {
	if s.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(s.APIKeyEnv)
}

// Online reports whether briefings should be requested from the service.
func (s IntelSettings) Online() bool {
	return s.Enabled && s.APIKey() != ""
}

// SSHSettings configures the SSH server.
type SSHSettings struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// MetricsSettings controls the gameplay metrics exporter.
type MetricsSettings struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"` // Export period; written to the log output
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks the settings for values the application cannot run with.
func (s Settings) Validate() error {
	if s.Game.TickRate < 1 || s.Game.TickRate > 240 {
		return fmt.Errorf("config: game.tick_rate %d out of range [1, 240]", s.Game.TickRate)
	}
	if !validLevels[strings.ToLower(s.Log.Level)] {
		return fmt.Errorf("config: unknown log.level %q", s.Log.Level)
	}
	if s.Storage.Path == "" {
		return fmt.Errorf("config: storage.path is empty")
	}
	if s.Intel.Timeout < 0 {
		return fmt.Errorf("config: intel.timeout must not be negative")
	}
	if s.Metrics.Enabled && s.Metrics.Interval <= 0 {
		return fmt.Errorf("config: metrics.interval must be positive")
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
