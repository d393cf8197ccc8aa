package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tower/internal/core"
)

type binding[A any] struct {
	action A
	keys   []string
}

func bind[A comparable](bindings ...binding[A]) map[string]A {
	m := make(map[string]A)
	for _, b := range bindings {
		for _, k := range b.keys {
			m[k] = b.action
		}
	}
	return m
}

// gameKeys binds key names to in-game actions. Quit keys are handled
// separately since they never reach the simulation.
var gameKeys = bind(
	binding[core.Action]{core.ActionDrop, []string{" ", "enter", "up", "w"}},
	binding[core.Action]{core.ActionLeft, []string{"left", "a"}},
	binding[core.Action]{core.ActionRight, []string{"right", "d"}},
	binding[core.Action]{core.ActionPause, []string{"p", "esc"}},
	binding[core.Action]{core.ActionRestart, []string{"r"}},
	binding[core.Action]{core.ActionBack, []string{"b"}},
)

var menuKeys = bind(
	binding[MenuAction]{MenuActionUp, []string{"w", "up", "k"}},
	binding[MenuAction]{MenuActionDown, []string{"s", "down", "j"}},
	binding[MenuAction]{MenuActionSelect, []string{"enter", " "}},
	binding[MenuAction]{MenuActionBack, []string{"b", "esc"}},
	binding[MenuAction]{MenuActionRuns, []string{"tab"}},
)

func isQuitKey(k string) bool {
	return k == "q" || k == "ctrl+c"
}

// KeyMapper translates Bubble Tea input into game and menu actions.
type KeyMapper struct{}

func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey returns the action bound to a key. Quit keys report
// (ActionQuit, true); unbound keys yield ActionNone.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := msg.String()
	if isQuitKey(k) {
		return core.ActionQuit, true
	}
	if a, ok := gameKeys[k]; ok {
		return a, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame sets the key's action on frame and reports whether it
// was a quit request. Quit is never written into the frame.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if !isQuit && action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapMouse drops the block on a left-button press.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) core.Action {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return core.ActionNone
	}
	return core.ActionDrop
}

// MenuAction is an input as understood by the game picker.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionRuns
	MenuActionQuit
)

func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	k := msg.String()
	if isQuitKey(k) {
		return MenuActionQuit
	}
	return menuKeys[k]
}
