package core

// Action is what the player asked for during a tick, independent of the
// key, click or network message that produced it.
type Action int

const (
	ActionNone    Action = iota
	ActionDrop           // Start the match, or drop the active block
	ActionLeft           // Collector paddle one step left
	ActionRight          // Collector paddle one step right
	ActionPause          // Toggle pause
	ActionRestart        // New match after game over
	ActionBack           // Leave the game (platform only)
	ActionQuit           // Exit (platform only)

	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:    "None",
	ActionDrop:    "Drop",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionPause:   "Pause",
	ActionRestart: "Restart",
	ActionBack:    "Back",
	ActionQuit:    "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// ParseAction is the inverse of Action.String. Unknown names map to
// ActionNone and false.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return Action(a), true
		}
	}
	return ActionNone, false
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered this frame.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// List returns the triggered actions in ascending order.
func (f InputFrame) List() []Action {
	var out []Action
	for a := ActionNone; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
