package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilejump/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a level picker menu.
Runs are stored per-server (all users share the same scoreboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tilejump/host_key

Examples:
  tilejump serve                           # Listen on :23234 with auto-generated key
  tilejump serve --ssh :2222               # Listen on port 2222
  tilejump serve --host-key ./my_host_key  # Use specific host key
  tilejump serve --levels-dir ./levels     # Offer extra levels

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	addGameFlags(serveCmd, false)
	addHoldFlag(serveCmd)
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	if _, err := configureGame(nil); err != nil {
		fatal(logger, "invalid game flags", "error", err)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.LevelDir = flagLevelDir
	cfg.TickRate = flagFPS
	cfg.HoldWindow = holdWindow()
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Logger = logger.WithPrefix("tilejump-ssh")

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fatal(logger, "cannot create server", "error", err)
	}

	logger.Info("connect with ssh", "address", cfg.Address)
	if err := server.ListenAndServe(); err != nil {
		fatal(logger, "server error", "error", err)
	}
}
