package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pico-snake/internal/config"
	"github.com/vovakirdan/pico-snake/internal/engine"
	"github.com/vovakirdan/pico-snake/internal/platform/sim"
	"github.com/vovakirdan/pico-snake/internal/storage"
)

var (
	flagScript string
	flagPNG    string
	flagFor    time.Duration
	flagRecord bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Replay an input script headless",
	Long: `Run the engine on a 240x135 framebuffer driven by a virtual clock.

The script is a YAML list of timed inputs:

  seed: 7
  events:
    - at: 0s
      press: [B]
    - at: 1200ms
      dir: up

The run lasts until the last event plus --for, then prints the final state.
A script seed is used unless --seed is given.

Examples:
  snake sim --script demo.yaml
  snake sim --script demo.yaml --png last.png
  snake sim --script demo.yaml --for 1m --record`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagScript, "script", "", "Path to input script YAML")
	simCmd.Flags().StringVar(&flagPNG, "png", "", "Write the last frame to this PNG file")
	simCmd.Flags().DurationVar(&flagFor, "for", 30*time.Second, "Virtual time to run after the last event")
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the results to the ledger")
}

// simulate replays script on a fresh headless device and returns once the
// virtual clock passes the last event plus extra.
func simulate(ctx context.Context, cfg config.Config, script *sim.Script, extra time.Duration, logger *log.Logger, store *storage.Store) (*sim.Device, *engine.Engine, error) {
	dev := sim.NewDevice(cfg.Display.Width, cfg.Display.Height, script)
	defer dev.Close()

	length := extra
	if script != nil {
		length += script.Duration()
	}
	dev.RunFor(length)

	eng, err := newEngine(dev, cfg, logger, store)
	if err != nil {
		return nil, nil, err
	}
	return dev, eng, eng.Run(ctx)
}

func runSim(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var script *sim.Script
	if flagScript != "" {
		if script, err = sim.LoadScript(flagScript); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if script.Seed != nil && !cmd.Flags().Changed("seed") {
			cfg.Seed = *script.Seed
		}
	}

	logger, logCloser, err := newLogger(cfg, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	var store *storage.Store
	if flagRecord {
		if store, err = openStore(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
			os.Exit(1)
		}
		if store != nil {
			defer store.Close()
		}
	}

	dev, eng, err := simulate(context.Background(), cfg, script, flagFor, logger, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	snap := eng.Snapshot()
	head := snap.Head()
	fmt.Printf("Mode:    %s\n", eng.Mode())
	fmt.Printf("Seed:    %d\n", eng.Seed())
	fmt.Printf("Elapsed: %s\n", dev.Now().Sub(sim.Epoch))
	fmt.Printf("Score:   %d\n", snap.Stats.Points)
	fmt.Printf("Food:    %d\n", snap.Stats.FoodEaten)
	fmt.Printf("Length:  %d\n", len(snap.Body))
	fmt.Printf("Head:    (%d,%d) heading %s\n", head.X, head.Y, snap.Heading)
	fmt.Printf("Frames:  %d\n", dev.FB.Ops().Flushes)

	if flagPNG != "" {
		if err := dev.FB.SavePNG(flagPNG); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Frame written to %s\n", flagPNG)
	}
}
