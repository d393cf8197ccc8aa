package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-tower/internal/platform/tui"
	"github.com/vovakirdan/tui-tower/internal/platform/ws"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

var (
	flagSSHAddr     string
	flagWSAddr      string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve games over SSH and WebSocket",
	Long: `Start network servers for remote play.

--ssh serves the full terminal UI over SSH. Each connection gets its own
session with a game picker menu, and finished runs go to the shared journal.

--ws serves a WebSocket endpoint at /ws?game=<id>[&w=..&h=..&seed=..].
Clients send {"type":"drop"|"reset"|"left"|"right"|"pause"} and receive
a JSON state message every tick.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tower/host_key

Examples:
  tower serve                          # SSH on :23234
  tower serve --ssh :2222 --ws :8080   # Both transports
  tower serve --ssh "" --ws :8080      # WebSocket only

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port, empty to disable)")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", "", "WebSocket server address (host:port, empty to disable)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

// runServe returns errors instead of exiting so the deferred journal and
// log closes always run.
func runServe(_ *cobra.Command, _ []string) error {
	if flagSSHAddr == "" && flagWSAddr == "" {
		return errors.New("nothing to serve; pass --ssh and/or --ws")
	}

	logger, closeLog, err := newLogger("tower", false)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if flagSSHAddr != "" {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("run journal unavailable, runs will not be saved", "error", err)
			store = nil
		} else {
			defer store.Close()
		}

		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = flagSSHAddr
		sshCfg.HostKeyPath = flagHostKey
		sshCfg.TickRate = flagFPS
		if flagIdleTimeout > 0 {
			sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		}
		sshServer, err := tui.NewSSHServer(sshCfg, store, logger.WithPrefix("tower-ssh"))
		if err != nil {
			return fmt.Errorf("creating ssh server: %w", err)
		}
		g.Go(func() error { return sshServer.ListenAndServe(ctx) })
		fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(sshServer.Addr()))
	}

	if flagWSAddr != "" {
		wsCfg := ws.DefaultConfig()
		wsCfg.Address = flagWSAddr
		wsCfg.TickRate = flagFPS
		wsServer := ws.NewServer(wsCfg, logger.WithPrefix("tower-ws"))
		g.Go(func() error { return wsServer.ListenAndServe(ctx) })
		fmt.Printf("WebSocket endpoint: ws://localhost:%s/ws?game=stack\n", portOf(flagWSAddr))
	}

	fmt.Println("Press Ctrl+C to stop")

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
