package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	wishlog "github.com/charmbracelet/wish/logging"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/logging"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig configures the SSH frontend.
type SSHServerConfig struct {
	Address     string        // host:port, e.g. ":23234"
	HostKeyPath string        // Generated on first start; defaults to ~/.tower/host_key
	IdleTimeout time.Duration // Idle connections are closed after this long
	TickRate    int           // Simulation rate of every session
}

func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer serves a private menu and game session to every SSH
// connection. Runs from all connections share one journal.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer prepares the server without listening. A nil store
// turns journaling off.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}
	cfg.HostKeyPath = keyPath

	s := &SSHServer{config: cfg, store: store, logger: logger}

	// Middlewares run last to first: log, require a PTY, then the UI.
	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newSession),
			activeterm.Middleware(),
			wishlog.MiddlewareWithLogger(logger),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: create ssh server: %w", err)
	}
	return s, nil
}

func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: locate home directory: %w", err)
		}
		path = filepath.Join(home, ".tower", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: create host key directory: %w", err)
	}
	return path, nil
}

// newSession builds the Bubble Tea program for one connection, sized
// to its PTY.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	logger := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
	return NewSessionModel(s.store, logger, cfg), []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("ssh server listening", "address", s.config.Address, "host_key", s.config.HostKeyPath)

	errc := make(chan error, 1)
	go func() {
		err := s.server.ListenAndServe()
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		}
		errc <- err
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.logger.Info("ssh server shutting down")
		return s.Shutdown()
	}
}

// Shutdown stops accepting connections and waits briefly for open
// sessions to end.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) Addr() string {
	return s.config.Address
}
