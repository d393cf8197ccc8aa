// Package registry maps game IDs to factories. Game packages register
// themselves from init(), so the platform can list and create games
// without importing them by name.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-tower/internal/core"
)

// Game is the interface every game implements. Games contain pure logic
// with no platform dependencies (no Bubble Tea, no sockets); the platform
// handles input mapping, timing and presentation.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "stack").
	// Used for CLI commands and the run journal.
	ID() string

	// Title returns a human-readable name for display (e.g., "Tower Stack").
	Title() string

	// Reset starts the game over with the given screen size, tick rate
	// and seed. Called once at start and again on every restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to platform-level actions (Drop, Pause, etc.).
	// Given the same seed and frames, a game must reach the same state.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Configurable is implemented by games whose behaviour depends on a
// loaded config and difficulty preset. The journal stores both so a run
// replays under the settings it was played with.
type Configurable interface {
	// JournalConfig returns the preset name and the resolved config, as
	// YAML, used by the last Reset.
	JournalConfig() (difficulty, cfg string, err error)

	// PinConfig makes every later Reset use cfg as-is instead of loading
	// files and applying the process-wide preset.
	PinConfig(difficulty, cfg string) error
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory under id. The title is taken from a
// throwaway instance. Panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{
		info:    GameInfo{ID: id, Title: f().Title()},
		factory: f,
	}
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Create returns a fresh instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether a game is registered under id.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
