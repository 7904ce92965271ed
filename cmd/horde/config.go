package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/horde/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default settings file",
	Long: `Print the built-in settings as YAML.

Save the output to ~/.horde/configs/horde.yaml or ./configs/horde.yaml
and edit it to override the defaults.

Examples:
  horde config > ~/.horde/configs/horde.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		os.Stdout.Write(config.GetDefaultYAML())
	},
}
