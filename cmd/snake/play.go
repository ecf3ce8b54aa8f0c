package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pico-snake/internal/config"
	"github.com/vovakirdan/pico-snake/internal/platform/tui"
	"github.com/vovakirdan/pico-snake/internal/registry"
)

var (
	flagBackend    string
	flagDifficulty string
	flagPick       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Arrows/WASD/HJKL  - Steer
  Space/Enter/P     - Start, pause and resume (button B)
  R                 - Reset to the title screen (button A)
  Q/Esc/Ctrl+C      - Quit

Backends:
  tea    - Bubble Tea renderer (default)
  tcell  - tcell full-screen renderer

Difficulty options:
  easy   - Slow start, speeds up as the snake eats
  normal - Starts at 30% speed-up, progresses to max
  hard   - Fast start, progresses to max
  fixed  - Constant handheld cadence (default)

Results are recorded to the ledger unless storage is disabled.

Examples:
  snake play
  snake play --backend tcell
  snake play --difficulty hard
  snake play --pick
  snake play --seed 42 --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBackend, "backend", "", "Display backend (default from config, see 'snake backends')")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagPick, "pick", false, "Choose the difficulty from a menu first")
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagPick {
		picked, ok, err := tui.RunDifficultyPicker(preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		// User quit
		if !ok {
			return
		}
		preset = picked
	}
	if flagPick || cmd.Flags().Changed("difficulty") {
		config.ApplyPreset(&cfg, preset)
	}

	backend := cfg.Display.Backend
	if flagBackend != "" {
		backend = flagBackend
	}
	if backend == "sim" {
		fmt.Fprintln(os.Stderr, "Error: the sim backend has no keyboard; use 'snake sim --script <file>'")
		os.Exit(1)
	}
	if !registry.Exists(backend) {
		fmt.Fprintf(os.Stderr, "Error: unknown backend %q\n", backend)
		fmt.Fprintln(os.Stderr, "Run 'snake backends' to see available backends.")
		os.Exit(1)
	}

	logger, logCloser, err := newLogger(cfg, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	store, err := openStore(cfg)
	if err != nil {
		logger.Warn("result ledger unavailable, results will not be saved", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	dev, err := registry.Create(backend, registry.Options{
		Width:          cfg.Display.Width,
		Height:         cfg.Display.Height,
		DirDebounce:    cfg.Input.DirectionDebounce,
		ButtonDebounce: cfg.Input.ButtonDebounce,
		Logger:         logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer dev.Close()

	eng, err := newEngine(dev, cfg, logger, store)
	if err != nil {
		dev.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runDevice(ctx, dev, eng); err != nil {
		dev.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if store != nil {
		if best, err := store.HighScore(); err == nil && best > 0 {
			fmt.Printf("High score: %d\n", best)
		}
	}
}
