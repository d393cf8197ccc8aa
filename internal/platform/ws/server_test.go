package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-tower/internal/core"
	_ "github.com/vovakirdan/tui-tower/internal/games/collector"
)

func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := NewServer(Config{TickRate: 60}, nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial(%s) failed: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() failed: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("bad message %s: %v", payload, err)
	}
	return msg
}

// waitFor reads messages until cond holds or the budget runs out.
func waitFor(t *testing.T, conn *websocket.Conn, cond func(Message) bool) Message {
	t.Helper()
	for i := 0; i < 300; i++ {
		if msg := readMessage(t, conn); cond(msg) {
			return msg
		}
	}
	t.Fatal("condition not reached")
	return Message{}
}

func send(t *testing.T, conn *websocket.Conn, typ string) {
	t.Helper()
	if err := conn.WriteJSON(Command{Type: typ}); err != nil {
		t.Fatalf("WriteJSON(%s) failed: %v", typ, err)
	}
}

func TestStackStreamsSnapshots(t *testing.T) {
	ts := startServer(t)
	conn := dial(t, ts, "game=stack&w=40&h=20&seed=3")

	first := readMessage(t, conn)
	if first.Type != "state" || first.Game != "stack" || first.Snapshot == nil {
		t.Fatalf("first message = %+v, expected a stack snapshot", first)
	}
	if first.Snapshot.Started || first.Snapshot.ActiveBlock != nil {
		t.Error("session should start idle")
	}
	if len(first.Snapshot.TowerBlocks) != 1 {
		t.Errorf("tower should hold the base only, has %d blocks", len(first.Snapshot.TowerBlocks))
	}

	send(t, conn, "drop")
	started := waitFor(t, conn, func(m Message) bool { return m.Snapshot.Started })
	if started.Snapshot.ActiveBlock == nil {
		t.Error("starting the match should spawn a block")
	}

	send(t, conn, "drop")
	waitFor(t, conn, func(m Message) bool {
		a := m.Snapshot.ActiveBlock
		return m.Snapshot.Ended || len(m.Snapshot.TowerBlocks) > 1 || (a != nil && a.Phase == "fast_drop")
	})
}

func TestStackReset(t *testing.T) {
	ts := startServer(t)
	conn := dial(t, ts, "game=stack_camera&seed=9")

	send(t, conn, "drop")
	waitFor(t, conn, func(m Message) bool { return m.Snapshot.Started })

	send(t, conn, "reset")
	msg := waitFor(t, conn, func(m Message) bool {
		s := m.Snapshot
		return s.Started && s.Score == 0 && len(s.TowerBlocks) == 1 && s.ActiveBlock != nil && s.ActiveBlock.Phase == "descending"
	})
	if msg.GameOver {
		t.Error("reset should start a fresh match")
	}
}

func TestStackResetWhilePaused(t *testing.T) {
	ts := startServer(t)
	conn := dial(t, ts, "game=stack&seed=4")

	send(t, conn, "drop")
	waitFor(t, conn, func(m Message) bool { return m.Snapshot.Started })
	send(t, conn, "pause")
	waitFor(t, conn, func(m Message) bool { return m.Paused })

	send(t, conn, "reset")
	waitFor(t, conn, func(m Message) bool { return !m.Paused && m.Snapshot.Started && m.Score == 0 })

	send(t, conn, "drop")
	waitFor(t, conn, func(m Message) bool {
		a := m.Snapshot.ActiveBlock
		return len(m.Snapshot.TowerBlocks) > 1 || (a != nil && a.Phase == "fast_drop")
	})
}

func TestCollectorStreamsRows(t *testing.T) {
	ts := startServer(t)
	conn := dial(t, ts, "game=collector&w=30&h=12&seed=1")

	msg := readMessage(t, conn)
	if msg.Snapshot != nil {
		t.Error("collector has no stack snapshot")
	}
	if len(msg.Rows) != 12 || len([]rune(msg.Rows[0])) != 30 {
		t.Fatalf("rows = %d x %d, expected 12 x 30", len(msg.Rows), len([]rune(msg.Rows[0])))
	}
	if !strings.Contains(msg.Rows[0], "Score: 0") {
		t.Errorf("HUD row = %q", msg.Rows[0])
	}

	send(t, conn, "left")
	send(t, conn, "nonsense")
	waitFor(t, conn, func(m Message) bool { return m.Tick >= 5 })
}

func TestRejectsBadRequests(t *testing.T) {
	ts := startServer(t)

	for _, q := range []string{"game=pinball", "w=abc", "h=1", "seed=x"} {
		url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?" + q
		_, resp, err := websocket.DefaultDialer.Dial(url, nil)
		if err == nil {
			t.Errorf("Dial(%s) should fail", q)
			continue
		}
		if resp == nil || resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Dial(%s) status = %v, expected 400", q, resp)
		}
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		payload string
		action  core.Action
		reset   bool
		ok      bool
	}{
		{`{"type":"drop"}`, core.ActionDrop, false, true},
		{`{"type":"DROP"}`, core.ActionDrop, false, true},
		{`{"type":"left"}`, core.ActionLeft, false, true},
		{`{"type":"right"}`, core.ActionRight, false, true},
		{`{"type":"pause"}`, core.ActionPause, false, true},
		{`{"type":"reset"}`, core.ActionRestart, true, true},
		{`{"type":"jump"}`, core.ActionNone, false, false},
		{`not json`, core.ActionNone, false, false},
	}
	for _, tc := range tests {
		action, reset, ok := parseCommand([]byte(tc.payload))
		if action != tc.action || reset != tc.reset || ok != tc.ok {
			t.Errorf("parseCommand(%s) = (%v, %v, %v), expected (%v, %v, %v)",
				tc.payload, action, reset, ok, tc.action, tc.reset, tc.ok)
		}
	}
}
