package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "horde.yaml"

// Load loads settings.
// Search order: customPath -> ~/.horde/configs/horde.yaml -> ./configs/horde.yaml -> embedded default.
// Files are applied over Default, so partial files keep the remaining defaults.
func Load(customPath string) (Settings, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Settings{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Settings{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if cfg, ok := tryFile(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryFile(filepath.Join("configs", fileName)); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := parse(defaultHordeYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryFile loads an optional settings file; unreadable or invalid files are skipped.
func tryFile(path string) (Settings, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, false
	}
	cfg, err := parse(data)
	if err != nil || cfg.Validate() != nil {
		return Settings{}, false
	}
	return cfg, true
}

func parse(data []byte) (Settings, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".horde", "configs", filename)
}
