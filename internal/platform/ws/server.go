// Package ws streams game sessions over WebSocket. Each connection owns
// one game driven by its own ticker goroutine; the client sends commands
// and receives a JSON state message every tick.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/games/stack"
	"github.com/vovakirdan/tui-tower/internal/logging"
	"github.com/vovakirdan/tui-tower/internal/registry"
)

// Connection limits.
const (
	readLimit    = 4 << 10
	readTimeout  = 60 * time.Second
	writeTimeout = 5 * time.Second
	pingInterval = 25 * time.Second
	inputBuffer  = 16
	sendBuffer   = 64
)

// Config holds configuration for the WebSocket server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// TickRate is the simulation and push rate per connection.
	TickRate int

	// Default playfield size when the client does not pass w and h.
	Width  int
	Height int
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{Address: ":8080", TickRate: 60, Width: 40, Height: 30}
}

// Command is a client message.
type Command struct {
	Type string `json:"type"` // drop, reset, left, right or pause
}

// Message is pushed to the client after every tick. Stack games carry a
// snapshot; other games carry their rendered rows.
type Message struct {
	Type     string          `json:"type"`
	Game     string          `json:"game"`
	Tick     int             `json:"tick"`
	Score    int             `json:"score"`
	GameOver bool            `json:"gameOver"`
	Paused   bool            `json:"paused"`
	Snapshot *stack.Snapshot `json:"snapshot,omitempty"`
	Rows     []string        `json:"rows,omitempty"`
}

// Server serves game sessions on /ws.
type Server struct {
	config   Config
	logger   *log.Logger
	upgrader websocket.Upgrader
	http     *http.Server
}

// NewServer creates a server. logger may be nil.
func NewServer(cfg Config, logger *log.Logger) *Server {
	def := DefaultConfig()
	if cfg.TickRate <= 0 {
		cfg.TickRate = def.TickRate
	}
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Server{
		config: cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients may be served from anywhere.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.http = &http.Server{Addr: cfg.Address, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	return s
}

// Handler returns the HTTP handler with the /ws endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// ListenAndServe serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting WebSocket server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down WebSocket server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

// runtimeFromQuery builds the runtime for a connection:
// /ws?game=stack&w=40&h=30&seed=7
func (s *Server) runtimeFromQuery(r *http.Request) (string, core.RuntimeConfig, error) {
	q := r.URL.Query()
	gameID := q.Get("game")
	if gameID == "" {
		gameID = stack.IDStack
	}
	if !registry.Exists(gameID) {
		return "", core.RuntimeConfig{}, fmt.Errorf("unknown game %q", gameID)
	}

	cfg := core.RuntimeConfig{
		ScreenW:  s.config.Width,
		ScreenH:  s.config.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	for name, dst := range map[string]*int{"w": &cfg.ScreenW, "h": &cfg.ScreenH} {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 4 || n > 500 {
				return "", core.RuntimeConfig{}, fmt.Errorf("invalid %s %q", name, v)
			}
			*dst = n
		}
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return "", core.RuntimeConfig{}, fmt.Errorf("invalid seed %q", v)
		}
		cfg.Seed = seed
	}
	return gameID, cfg, nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	gameID, cfg, err := s.runtimeFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	game, err := registry.Create(gameID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := newClient(conn, game, cfg, s.logger.With("remote", r.RemoteAddr, "game", gameID))
	c.logger.Info("client connected")
	go c.writePump()
	go c.readPump()
	go c.run()
}

// parseCommand maps a client message to an action. reset is reported
// separately since it is not a simulation input.
func parseCommand(payload []byte) (action core.Action, reset bool, ok bool) {
	var cmd Command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return core.ActionNone, false, false
	}
	switch strings.ToLower(cmd.Type) {
	case "drop":
		return core.ActionDrop, false, true
	case "left":
		return core.ActionLeft, false, true
	case "right":
		return core.ActionRight, false, true
	case "pause":
		return core.ActionPause, false, true
	case "reset":
		return core.ActionRestart, true, true
	}
	return core.ActionNone, false, false
}
