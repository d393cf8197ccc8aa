package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tower/internal/registry"
	"github.com/vovakirdan/tui-tower/internal/replay"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

const runsPageSize = 100

var (
	runsFrameStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	runsTabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	runsActiveTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	runsEmptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
)

// runsKeys are the bindings for the runs board.
type runsKeys struct {
	Up, Down   key.Binding
	Next, Prev key.Binding
	Verify     key.Binding
	Back, Quit key.Binding
}

func (k runsKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Verify, k.Back, k.Quit}
}

func (k runsKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Prev}}
}

func newRunsKeys() runsKeys {
	kb := func(help, desc string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
	}
	return runsKeys{
		Up:     kb("↑/k", "up", "up", "k"),
		Down:   kb("↓/j", "down", "down", "j"),
		Next:   kb("tab/→", "next game", "tab", "right", "l"),
		Prev:   kb("S-tab/←", "prev game", "shift+tab", "left", "h"),
		Verify: kb("enter/v", "verify", "enter", "v"),
		Back:   kb("esc/b", "back", "esc", "b"),
		Quit:   kb("q", "quit", "q", "ctrl+c"),
	}
}

// RunsModel browses the journal one game at a time and re-simulates
// the highlighted run on request.
type RunsModel struct {
	store      *storage.Store
	games      []registry.GameInfo
	gameCursor int
	runs       []storage.Run
	table      table.Model
	help       help.Model
	keys       runsKeys
	status     string
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewRunsModel opens the board on the first registered game.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	m := RunsModel{
		store:  store,
		games:  registry.List(),
		help:   help.New(),
		keys:   newRunsKeys(),
		width:  width,
		height: height,
	}
	m.table = newRunsTable(width, height)
	if len(m.games) > 0 {
		m.loadRuns()
	}
	return m
}

func newRunsTable(width, height int) table.Model {
	dateW := 14
	if width > 60 {
		dateW = min(width-40, 20)
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Run", Width: 6},
			{Title: "Score", Width: 7},
			{Title: "Time", Width: 8},
			{Title: "Date", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-11, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

func (m *RunsModel) loadRuns() {
	m.runs, m.status = nil, ""
	if m.store != nil {
		runs, err := m.store.RecentRuns(m.games[m.gameCursor].ID, runsPageSize)
		if err != nil {
			m.status = fmt.Sprintf("could not load runs: %v", err)
		}
		m.runs = runs
	}

	rows := make([]table.Row, 0, len(m.runs))
	for _, r := range m.runs {
		rows = append(rows, table.Row{
			"#" + strconv.FormatInt(r.ID, 10),
			strconv.Itoa(r.Score),
			formatRunTime(r),
			r.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *RunsModel) switchGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.gameCursor = (m.gameCursor + delta + len(m.games)) % len(m.games)
	m.loadRuns()
}

func (m RunsModel) selectedRun() (storage.Run, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.Run{}, false
	}
	return m.runs[i], true
}

// formatRunTime renders a run's simulated length as m:ss.
func formatRunTime(r storage.Run) string {
	if r.TickRate <= 0 {
		return "-"
	}
	secs := r.Ticks / r.TickRate
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func (m *RunsModel) verifySelected() {
	run, ok := m.selectedRun()
	if !ok {
		return
	}
	res, err := replay.Replay(run)
	if err != nil {
		m.status = fmt.Sprintf("Run #%d: %v", run.ID, err)
		return
	}
	m.status = fmt.Sprintf("Run #%d verified: score %d in %d ticks", run.ID, res.Score, res.Ticks)
}

func (m RunsModel) Init() tea.Cmd {
	return nil
}

func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Verify):
			m.verifySelected()
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.switchGame(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.switchGame(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		m.table = newRunsTable(m.width, m.height)
		if len(m.games) > 0 {
			status := m.status
			m.loadRuns()
			m.status = status
		}
		m.table.SetCursor(cursor)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "RECENT RUNS"
	if len(m.games) > 0 {
		title += " - " + m.games[m.gameCursor].Title
	}

	parts := []string{
		centerText(menuTitleStyle.Render(title), m.width),
		"",
		centerText(m.tabs(), m.width),
		"",
	}
	if len(m.runs) == 0 {
		parts = append(parts, runsFrameStyle.Render(runsEmptyStyle.Render("No runs recorded yet.\nFinish a game to journal it!")))
	} else {
		parts = append(parts, runsFrameStyle.Render(m.table.View()))
		if run, ok := m.selectedRun(); ok {
			parts = append(parts, menuDimStyle.Render(fmt.Sprintf(
				"seed %d  |  %s  |  %dx%d @ %d fps  |  %d input frames",
				run.Seed, run.DifficultyName(), run.ScreenW, run.ScreenH, run.TickRate, len(run.Inputs))))
		}
	}
	if m.status != "" {
		parts = append(parts, menuActiveStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m.keys))

	return strings.Join(parts, "\n")
}

// tabs lists the games, collapsing to the active title when the row
// would not fit.
func (m RunsModel) tabs() string {
	if len(m.games) == 0 {
		return ""
	}
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.gameCursor {
			tabs[i] = runsActiveTabStyle.Render(g.Title)
		} else {
			tabs[i] = runsTabStyle.Render(g.Title)
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(row) > m.width-4 {
		return runsActiveTabStyle.Render("< " + m.games[m.gameCursor].Title + " >")
	}
	return row
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}

// RunRunsBoard runs the board as its own program. goBack is false when
// the user quit.
func RunRunsBoard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewRunsModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(RunsModel)
	return ok && m.IsGoingBack(), nil
}
