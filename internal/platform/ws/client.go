package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/games/stack"
	"github.com/vovakirdan/tui-tower/internal/registry"
)

// sessionOwner is implemented by the stack games.
type sessionOwner interface {
	Session() *stack.Session
}

// restarter is implemented by games that can start a new match in place.
type restarter interface {
	Restart()
}

// client is one connection. The run goroutine exclusively owns the game;
// the read pump only feeds the input channel.
type client struct {
	conn    *websocket.Conn
	game    registry.Game
	runtime core.RuntimeConfig
	logger  *log.Logger
	screen  *core.Screen

	inputs chan core.Action
	send   chan []byte
	done   chan struct{}
	once   sync.Once
	tick   int
}

func newClient(conn *websocket.Conn, game registry.Game, runtime core.RuntimeConfig, logger *log.Logger) *client {
	game.Reset(runtime)
	return &client{
		conn:    conn,
		game:    game,
		runtime: runtime,
		logger:  logger,
		screen:  core.NewScreen(runtime.ScreenW, runtime.ScreenH),
		inputs:  make(chan core.Action, inputBuffer),
		send:    make(chan []byte, sendBuffer),
		done:    make(chan struct{}),
	}
}

// close stops every goroutine of the client. Safe to call repeatedly.
func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// enqueue queues a message without blocking the tick; when the client
// falls behind the message is dropped.
func (c *client) enqueue(b []byte) {
	select {
	case c.send <- b:
	default:
	}
}

// readPump turns client messages into queued actions.
func (c *client) readPump() {
	defer c.close()
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(readTimeout))

		action, _, ok := parseCommand(payload)
		if !ok {
			c.logger.Debug("ignoring message", "payload", string(payload))
			continue
		}
		select {
		case c.inputs <- action:
		default:
			c.logger.Debug("input buffer full, dropping", "action", action)
		}
	}
}

// writePump writes queued messages and keeps the connection alive.
func (c *client) writePump() {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	defer c.close()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// run is the tick loop: drain inputs, step the game, push its state.
func (c *client) run() {
	ticker := time.NewTicker(c.runtime.TickDuration())
	defer ticker.Stop()

	c.push()
	for {
		select {
		case <-ticker.C:
			c.step(c.drain())
			c.push()
		case <-c.done:
			c.logger.Info("client disconnected", "ticks", c.tick, "score", c.game.State().Score)
			return
		}
	}
}

// drain collects the actions queued since the last tick.
func (c *client) drain() core.InputFrame {
	in := core.NewInputFrame()
	for {
		select {
		case a := <-c.inputs:
			in.Set(a)
		default:
			return in
		}
	}
}

// step applies one tick of input. A reset restarts the match: stack
// games skip the start gate, others are reset from scratch.
func (c *client) step(in core.InputFrame) {
	if in.Has(core.ActionRestart) {
		in.Clear()
		if r, ok := c.game.(restarter); ok {
			r.Restart()
		} else {
			c.game.Reset(c.runtime)
		}
	}
	c.game.Step(in)
	c.tick++
}

// message builds the state message for the current tick.
func (c *client) message() Message {
	st := c.game.State()
	msg := Message{
		Type:     "state",
		Game:     c.game.ID(),
		Tick:     c.tick,
		Score:    st.Score,
		GameOver: st.GameOver,
		Paused:   st.Paused,
	}
	if owner, ok := c.game.(sessionOwner); ok {
		snap := owner.Session().Snapshot()
		msg.Snapshot = &snap
		return msg
	}

	c.screen.Clear()
	c.game.Render(c.screen)
	msg.Rows = make([]string, c.screen.Height())
	for y := range msg.Rows {
		msg.Rows[y] = c.screen.Row(y)
	}
	return msg
}

func (c *client) push() {
	b, err := json.Marshal(c.message())
	if err != nil {
		c.logger.Error("encode state", "error", err)
		return
	}
	c.enqueue(b)
}
