// snake plays the pico-snake engine on a terminal, over SSH or headless.
//
// Usage:
//
//	snake play               - Play in this terminal
//	snake serve              - Start SSH server for remote play
//	snake sim --script f     - Replay an input script on the virtual clock
//	snake scores             - Show the result ledger
//	snake config             - Print the default configuration
//	snake backends           - List display backends
//
// Global flags:
//
//	--config <path>     - Configuration file
//	--seed <value>      - Set RNG seed for reproducible food placement
//	--db <path>         - Set database path (default: ~/.snake/results.db)
//	--log-file <path>   - Log to a rotated file instead of stderr
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import backends to register them
	_ "github.com/vovakirdan/pico-snake/internal/platform/sim"
	_ "github.com/vovakirdan/pico-snake/internal/platform/term"
	_ "github.com/vovakirdan/pico-snake/internal/platform/tui"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "pico-snake - the handheld snake game, anywhere",
	Long: `pico-snake runs the classic grid snake of a 240x135 handheld on
whatever host it finds: a terminal, an SSH session or a headless
framebuffer.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  sim       - Replay an input script headless
  scores    - View the result ledger
  config    - Print the default configuration
  backends  - List display backends

Examples:
  snake play
  snake play --backend tcell --difficulty hard
  snake serve --ssh :2222
  snake sim --script demo.yaml --png last.png
  snake scores --limit 20`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(backendsCmd)
}
