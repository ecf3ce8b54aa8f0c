package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pico-snake/internal/platform/tui"
	"github.com/vovakirdan/pico-snake/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH server",
	Long: `Start an SSH server where every connection plays its own game.

Each session gets a Bubble Tea display sized to its terminal and its own
engine. Results from all sessions go to the same ledger.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

Examples:
  snake serve                           # Listen on :23235 with auto-generated key
  snake serve --ssh :2222               # Listen on port 2222
  snake serve --host-key ./my_host_key  # Use specific host key
  snake serve --db ./results.db         # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config, :23235)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

// serverConfig merges the ssh section with the command flags.
func serverConfig(cmd *cobra.Command, sshCfg tui.SSHServerConfig) tui.SSHServerConfig {
	flags := cmd.Flags()
	if flags.Changed("ssh") {
		sshCfg.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		sshCfg.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	return sshCfg
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := newLogger(cfg, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	if store != nil {
		defer store.Close()
	}

	sshCfg := tui.DefaultSSHServerConfig()
	if cfg.SSH.Address != "" {
		sshCfg.Address = cfg.SSH.Address
	}
	if cfg.SSH.IdleTimeout > 0 {
		sshCfg.IdleTimeout = cfg.SSH.IdleTimeout
	}
	sshCfg.HostKeyPath = cfg.SSH.HostKeyPath
	sshCfg.DirDebounce = cfg.Input.DirectionDebounce
	sshCfg.ButtonDebounce = cfg.Input.ButtonDebounce
	sshCfg = serverConfig(cmd, sshCfg)

	play := func(ctx context.Context, dev registry.Device, user string) error {
		sessionLog := logger.With("user", user)
		eng, err := newEngine(dev, cfg, sessionLog, store)
		if err != nil {
			return err
		}
		return eng.Run(ctx)
	}

	server, err := tui.NewSSHServer(sshCfg, play, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting snake SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
