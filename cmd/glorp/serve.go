package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-glorp/internal/platform/tui"
	"github.com/vovakirdan/tui-glorp/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeLevels string
	flagServeConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Glorp SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the mode and level menu.
Scores are stored per-server (all users share the same leaderboard).
Sound is never played for remote sessions.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.glorp/host_key

Examples:
  glorp serve                           # Listen on :23234 with auto-generated key
  glorp serve --ssh :2222               # Listen on port 2222
  glorp serve --host-key ./my_host_key  # Use specific host key
  glorp serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagSSHAddr, "addr", ":23234", "Alias for --ssh")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeLevels, "levels-dir", "", "Directory of level YAML files")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom game config YAML")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := newLogger(false)

	gameCfg, err := loadGameConfig(flagServeConfig, "")
	if err != nil {
		return err
	}
	lvls, err := loadLevels(flagServeLevels)
	if err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Logger = logger
	cfg.Game = registry.Options{Config: &gameCfg, Levels: lvls}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting Glorp SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
