package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pico-snake/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in configuration as YAML.

Save it as ~/.snake/config.yaml or ./configs/snake.yaml and edit the keys
you want to change; missing keys keep their defaults.

Examples:
  snake config > ~/.snake/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	os.Stdout.Write(config.DefaultYAML())
}
