package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pico-snake/internal/config"
	"github.com/vovakirdan/pico-snake/internal/core"
	"github.com/vovakirdan/pico-snake/internal/engine"
	"github.com/vovakirdan/pico-snake/internal/logging"
	"github.com/vovakirdan/pico-snake/internal/registry"
	"github.com/vovakirdan/pico-snake/internal/render"
	"github.com/vovakirdan/pico-snake/internal/storage"
)

// loadConfig loads the configuration and applies the global flags that
// were set on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.Enabled = true
		cfg.Storage.Path = flagDBPath
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// newLogger builds the logger. Backends that own the terminal log to
// ~/.snake/snake.log unless a file is configured.
func newLogger(cfg config.Config, ownsTerminal bool) (*log.Logger, io.Closer, error) {
	opts := logging.FromConfig(cfg.Log)
	if ownsTerminal && opts.File == "" {
		opts.File = config.UserPath("snake.log")
	}
	return logging.New(opts)
}

// openStore opens the result ledger, or returns nil when it is disabled.
func openStore(cfg config.Config) (*storage.Store, error) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}
	return storage.Open(cfg.Storage.Path)
}

// gridSize picks the grid for a display. A fitted grid fills the display
// with one pixel cells inside the border; fitted reports whether the
// configured size was replaced.
func gridSize(grid config.GridConfig, m core.Metrics) (cols, rows int, fitted bool) {
	if !grid.FitTerminal {
		if _, err := render.FitLayout(m, grid.Width, grid.Height); err == nil {
			return grid.Width, grid.Height, false
		}
	}
	xs := max(1, m.XScale)
	return max(1, (m.Width-2)/xs), max(1, m.Height-2), true
}

// engineOptions converts the configuration into engine options. A nil store
// records nothing.
func engineOptions(cfg config.Config, logger *log.Logger, store *storage.Store) ([]engine.Option, error) {
	pal, err := cfg.RenderPalette()
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithTiming(cfg.EngineTiming()),
		engine.WithGameConfig(cfg.GameConfig()),
		engine.WithPalette(pal),
		engine.WithFailurePolicy(cfg.FailurePolicy()),
	}
	if cfg.Pacing.Enabled {
		opts = append(opts, engine.WithPacing(config.NewPacer(cfg.Pacing)))
	}
	if cfg.Seed != 0 {
		opts = append(opts, engine.WithSeed(cfg.Seed))
	}
	if store != nil {
		opts = append(opts, engine.WithResultSink(store))
	}
	return opts, nil
}

// newEngine sizes the grid to dev and builds an engine driving it.
func newEngine(dev registry.Device, cfg config.Config, logger *log.Logger, store *storage.Store) (*engine.Engine, error) {
	m := dev.Metrics()
	cols, rows, fitted := gridSize(cfg.Grid, m)
	if fitted && !cfg.Grid.FitTerminal {
		logger.Warn("configured grid does not fit the display, shrinking",
			"configured", fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height),
			"display", fmt.Sprintf("%dx%d", m.Width, m.Height),
			"grid", fmt.Sprintf("%dx%d", cols, rows),
		)
	}

	opts, err := engineOptions(cfg, logger, store)
	if err != nil {
		return nil, err
	}
	return engine.New(dev, dev, dev, cols, rows, opts...)
}

// runDevice runs eng on its own goroutine while dev pumps host events on
// this one. Whichever stops first stops the other.
func runDevice(ctx context.Context, dev registry.Device, eng *engine.Engine) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		errc <- eng.Run(ctx)
		dev.Close()
	}()

	loopErr := dev.Loop(ctx)
	cancel()
	if err := <-errc; err != nil {
		return err
	}
	return loopErr
}
