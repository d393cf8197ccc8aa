package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
	}{
		{"", false, true},
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, false},
	}

	for _, tc := range tests {
		t.Run("level "+tc.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, closeFn, err := New(Options{Level: tc.level, Output: &buf})
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			defer closeFn()

			logger.Debug("debug line")
			logger.Info("info line")

			out := buf.String()
			if got := strings.Contains(out, "debug line"); got != tc.debugSeen {
				t.Errorf("debug logged = %v, expected %v", got, tc.debugSeen)
			}
			if got := strings.Contains(out, "info line"); got != tc.infoSeen {
				t.Errorf("info logged = %v, expected %v", got, tc.infoSeen)
			}
		})
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("New() should reject an unknown level")
	}
}

func TestNewFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tower.log")

	var buf bytes.Buffer
	logger, closeFn, err := New(Options{File: path, Prefix: "test", Output: &buf})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	logger.Info("run saved", "id", 7)
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	for _, out := range []string{string(data), buf.String()} {
		if !strings.Contains(out, "run saved") || !strings.Contains(out, "test") {
			t.Errorf("log output missing message or prefix: %q", out)
		}
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic or write anywhere.
	Discard().Error("nothing to see")
}
