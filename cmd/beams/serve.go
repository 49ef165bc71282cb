package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-beams/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagRedisAddr   string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Beams SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a pack picker menu.
Scores are stored per-server; with --redis they are also pushed to a
shared leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.beams/host_key

Examples:
  beams serve                           # Listen on the configured address
  beams serve --ssh :2222               # Listen on port 2222
  beams serve --host-key ./my_host_key  # Use specific host key
  beams serve --redis localhost:6379    # Share a leaderboard between servers

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagRedisAddr, "redis", "", "Redis address for the shared leaderboard")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	addr := flagSSHAddr
	if addr == "" {
		addr = fmt.Sprintf("%s:%d", appConfig.Server.Host, appConfig.Server.Port)
	}
	hostKey := flagHostKey
	if hostKey == "" {
		hostKey = appConfig.Server.HostKeyPath
	}
	redisAddr := flagRedisAddr
	if redisAddr == "" {
		redisAddr = appConfig.Storage.RedisAddr
	}

	cfg := tui.SSHServerConfig{
		Address:        addr,
		HostKeyPath:    hostKey,
		DBPath:         appConfig.Storage.DBPath,
		RedisAddr:      redisAddr,
		LeaderboardKey: appConfig.Storage.LeaderboardKey,
		IdleTimeout:    time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:       flagFPS,
		Game:           appConfig,
		Theme:          tui.GetTheme(),
		Logger:         logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Beams SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
