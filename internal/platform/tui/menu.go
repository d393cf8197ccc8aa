package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/registry"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Runs   int // Journaled runs, shown next to the title
}

// MenuModel is the Bubble Tea model for the game picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	store     *storage.Store
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
	openRuns  bool
}

// NewMenuModel lists every registered game with its journaled run count.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	for _, g := range registry.List() {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			if n, err := store.CountRuns(g.ID); err == nil {
				item.Runs = n
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu. Leaving the menu, for whatever
// reason, ends its program with tea.Quit.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, len(m.items)-1)
		case MenuActionSelect:
			if len(m.items) > 0 {
				item := m.items[m.cursor]
				m.selected = &item
				return m, tea.Quit
			}
		case MenuActionRuns:
			if m.store != nil {
				m.openRuns = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	w := m.config.ScreenW

	lines := []string{
		"",
		centerText(menuTitleStyle.Render("T O W E R"), w),
		"",
		centerText(menuDimStyle.Render("Select a game"), w),
		"",
	}
	for i, item := range m.items {
		label := item.Title
		if m.store != nil {
			label = fmt.Sprintf("%-22s %3d runs", item.Title, item.Runs)
		}
		if i == m.cursor {
			lines = append(lines, centerText(menuActiveStyle.Render("> "+label), w))
		} else {
			lines = append(lines, centerText("  "+label, w))
		}
	}

	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	if m.store != nil {
		controls = "Up/Down: Navigate  |  Enter: Select  |  Tab: Runs  |  Q: Quit"
	}
	lines = append(lines, "", centerText(menuDimStyle.Render(controls), w), "")

	return strings.Join(lines, "\n")
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRuns returns true if user requested the runs board.
func (m MenuModel) WantsRuns() bool {
	return m.openRuns
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text on the left to centre it within width. Styled
// text is measured without its escape sequences.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult is how the menu program ended.
type MenuResult struct {
	GameID    string
	Config    core.RuntimeConfig
	WantsRuns bool
	Quit      bool
}

// RunMenu runs the menu as its own program and reports the choice.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsRuns():
		result.WantsRuns = true
	case m.IsQuitting(), m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Selected().GameID
	}
	return result, nil
}
