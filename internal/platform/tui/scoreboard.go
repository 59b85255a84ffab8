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

	"github.com/vovakirdan/tilejump/internal/core"
	"github.com/vovakirdan/tilejump/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 24
	maxRuns            = 100
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextLevel   key.Binding
	PrevLevel   key.Binding
	ClearedOnly key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.ClearedOnly, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.ClearedOnly, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextLevel:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/right", "next level")),
		PrevLevel:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/left", "prev level")),
		ClearedOnly: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cleared only")),
		Back:        key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type scoreboardExit int

const (
	scoreboardOpen scoreboardExit = iota
	scoreboardBack
	scoreboardQuit
)

// ScoreboardModel is the Bubble Tea model for the scoreboard screen. It
// browses the recorded runs of one level at a time.
type ScoreboardModel struct {
	levels      []MenuItem
	cur         int
	store       *storage.Store
	runs        []storage.RunEntry
	stats       *storage.LevelStats
	clearedOnly bool

	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int
	exit   scoreboardExit
}

// NewScoreboardModel creates a scoreboard over the built-in levels and the
// levels under levelDir.
func NewScoreboardModel(store *storage.Store, width, height int, levelDir string) ScoreboardModel {
	levels, _ := menuItems(store, levelDir)

	m := ScoreboardModel{
		levels: levels,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

func (m *ScoreboardModel) newTable() table.Model {
	avail := m.width - 4
	if m.wide() {
		avail -= sidebarWidth + 3
	}
	scoreW, dateW := 8, 14
	if avail > 60 {
		scoreW, dateW = 10, min(avail-40, 20)
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: scoreW},
			{Title: "Kills", Width: 6},
			{Title: "Outcome", Width: 8},
			{Title: "Ticks", Width: 7},
			{Title: "Date", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load fetches the runs and stats of the selected level.
func (m *ScoreboardModel) load() {
	m.runs, m.stats = nil, nil
	if m.store != nil && len(m.levels) > 0 {
		id := m.levels[m.cur].LevelID
		if runs, err := m.store.TopRuns(id, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.LevelStats(id); err == nil {
			m.stats = stats
		}
	}
	m.fillTable()
}

// visibleRuns applies the cleared-only filter. Ranks follow the filtered list.
func (m ScoreboardModel) visibleRuns() []storage.RunEntry {
	if !m.clearedOnly {
		return m.runs
	}
	var out []storage.RunEntry
	for _, r := range m.runs {
		if r.Outcome == core.OutcomeCleared {
			out = append(out, r)
		}
	}
	return out
}

func (m *ScoreboardModel) fillTable() {
	runs := m.visibleRuns()
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			"#" + strconv.Itoa(i+1),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Kills),
			string(r.Outcome),
			strconv.Itoa(r.Ticks),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) step(delta int) {
	if n := len(m.levels); n > 0 {
		m.cur = (m.cur + delta + n) % n
		m.load()
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.exit = scoreboardQuit
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.exit = scoreboardBack
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextLevel):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevLevel):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.ClearedOnly):
			m.clearedOnly = !m.clearedOnly
			m.fillTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.newTable()
		m.fillTable()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.exit != scoreboardOpen {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.levels) > 0 {
		title += " - " + m.levels[m.cur].Title
	}
	if m.clearedOnly {
		title += " (cleared)"
	}

	var b strings.Builder
	b.WriteString(highlightStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	runs := boxStyle.Render(m.runsView())
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxStyle.Width(sidebarWidth).Render(m.sidebar()), "  ", runs))
	} else {
		b.WriteString(centerText(m.tabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(runs, m.width))
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return ""
	}
	return fmt.Sprintf("%d runs  %d clears  avg %.0f  %d kills  last played %s",
		m.stats.Runs, m.stats.Clears, m.stats.AvgScore, m.stats.TotalKills,
		m.stats.LastPlayed.Format("Jan 02 15:04"))
}

func (m ScoreboardModel) sidebar() string {
	var b strings.Builder
	b.WriteString("Levels\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	b.WriteString("\n")
	for i, lvl := range m.levels {
		line := "  " + truncate(lvl.Title, sidebarWidth-6)
		if i == m.cur {
			line = highlightStyle.Render("> " + truncate(lvl.Title, sidebarWidth-6))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// tabs lists the levels on one line, or only the selected one when they do
// not fit.
func (m ScoreboardModel) tabs() string {
	active := highlightStyle.Background(lipgloss.Color("57")).Padding(0, 1)
	tabs := make([]string, len(m.levels))
	for i, lvl := range m.levels {
		name := truncate(lvl.Title, 10)
		if i == m.cur {
			tabs[i] = active.Render(name)
		} else {
			tabs[i] = mutedStyle.Render(" " + name + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 && len(m.levels) > 0 {
		line = "< " + m.levels[m.cur].Title + " >"
	}
	return line
}

func (m ScoreboardModel) runsView() string {
	if len(m.visibleRuns()) == 0 {
		return mutedStyle.Italic(true).Padding(2, 4).
			Render("No runs recorded yet.\nPlay this level to set a high score!")
	}
	return m.table.View()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.exit == scoreboardBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.exit == scoreboardQuit
}

// RunScoreboard runs the scoreboard screen. It reports whether the user went
// back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, width, height int, levelDir string) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height, levelDir), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
