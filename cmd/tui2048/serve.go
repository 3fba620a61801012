package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/transport/websocket"
)

var (
	flagSSHAddr     string
	flagWSAddr      string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve games over SSH and WebSocket",
	Long: `Start the remote play servers.

Each SSH connection plays its own game in the terminal UI. Each WebSocket
connection to /ws plays a headless game driven by JSON commands.
All players share the same high score.

Pass an empty address to disable a listener.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tui2048/host_key

Examples:
  tui2048 serve                          # SSH on :23234, WebSocket on :8080
  tui2048 serve --ssh :2222 --ws ""      # SSH only
  tui2048 serve --host-key ./my_host_key # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", "", "WebSocket server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting SSH players")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Server.SSHAddr = flagSSHAddr
	}
	if flags.Changed("ws") {
		cfg.Server.WSAddr = flagWSAddr
	}
	if flags.Changed("host-key") {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.Server.IdleTimeout = flagIdleTimeout
	}
	if cfg.Server.SSHAddr == "" && cfg.Server.WSAddr == "" {
		return errors.New("nothing to serve: both --ssh and --ws are empty")
	}

	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	store, extra, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := append(sessionOptions(cfg), extra...)
	if flagSeed != 0 {
		opts = append(opts, session.WithSeed(flagSeed))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Server.SSHAddr != "" {
		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = cfg.Server.SSHAddr
		sshCfg.HostKeyPath = cfg.Server.HostKeyPath
		sshCfg.IdleTimeout = cfg.Server.IdleTimeout
		sshCfg.Debug = cfg.Game.Debug

		sshServer, err := tui.NewSSHServer(sshCfg, store, opts, logger.WithPrefix("ssh"))
		if err != nil {
			return err
		}
		g.Go(func() error { return sshServer.ListenAndServe(ctx) })
		if _, port, err := net.SplitHostPort(cfg.Server.SSHAddr); err == nil {
			logger.Info("connect with", "cmd", "ssh localhost -p "+port)
		}
	}

	if cfg.Server.WSAddr != "" {
		wsServer := websocket.NewServer(store, opts, logger.WithPrefix("ws"))
		g.Go(func() error { return wsServer.ListenAndServe(ctx, cfg.Server.WSAddr) })
	}

	logger.Info("press Ctrl+C to stop")
	return g.Wait()
}

