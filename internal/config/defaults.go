package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/horde.yaml
var defaultHordeYAML []byte

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Game: GameSettings{
			TickRate: 60,
		},
		Log: LogSettings{
			Level: "info",
			File:  "~/.horde/horde.log",
		},
		Storage: StorageSettings{
			Path: "~/.horde/scores.db",
		},
		Intel: IntelSettings{
			Enabled:    true,
			Endpoint:   "https://generativelanguage.googleapis.com/",
			APIVersion: "v1beta",
			Model:      "gemini-3-flash-preview",
			APIKeyEnv:  "GEMINI_API_KEY",
			Timeout:    8 * time.Second,
		},
		SSH: SSHSettings{
			Address:     ":2222",
			HostKey:     "~/.horde/ssh_host_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
		Metrics: MetricsSettings{
			Enabled:  false,
			Interval: 30 * time.Second,
		},
	}
}

// GetDefaultYAML returns the embedded default settings file.
func GetDefaultYAML() []byte {
	return defaultHordeYAML
}
