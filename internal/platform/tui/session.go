package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilejump/internal/core"
	"github.com/vovakirdan/tilejump/internal/games/platformer"
	"github.com/vovakirdan/tilejump/internal/storage"
)

// SessionOptions configure a SessionModel.
type SessionOptions struct {
	LevelDir string
	Game     Options
}

// SessionModel runs a whole session in one program: the level menu, the
// scoreboard and the game, returning to the menu after each game or
// scoreboard visit. SSH sessions use it as their top-level model.
type SessionModel struct {
	store  *storage.Store
	config core.RuntimeConfig
	opts   SessionOptions
	screen tea.Model // MenuModel, ScoreboardModel or Model
	done   bool
}

// NewSessionModel creates a session that starts at the level menu.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	m := SessionModel{store: store, config: cfg, opts: opts}
	m.screen = NewMenuModel(store, cfg, opts.LevelDir)
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.screen.Init()
}

// Update forwards the message to the current screen and switches screens
// when it finishes. The screens quit their own programs when they finish;
// inside a session those commands are replaced.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = size.Width, size.Height
	}

	next, cmd := m.screen.Update(msg)
	m.screen = next

	switch s := next.(type) {
	case MenuModel:
		switch {
		case s.IsQuitting():
			return m.quit()
		case s.WantsScoreboard():
			m.screen = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH, m.opts.LevelDir)
			return m, m.screen.Init()
		case s.Selected() != nil:
			return m.play(s.Selected().LevelID)
		}

	case ScoreboardModel:
		switch {
		case s.IsQuitting():
			return m.quit()
		case s.IsGoingBack():
			return m.toMenu()
		}

	case Model:
		switch {
		case s.IsQuitting():
			return m.quit()
		case s.BackToMenu():
			return m.toMenu()
		}
	}
	return m, cmd
}

func (m SessionModel) play(levelID string) (tea.Model, tea.Cmd) {
	game := platformer.New()
	game.SelectLevel(levelID)

	opts := m.opts.Game
	if opts.Logger != nil {
		opts.Logger = opts.Logger.With("level", levelID)
	}
	m.screen = NewModel(game, m.store, m.config, opts)
	return m, m.screen.Init()
}

// toMenu rebuilds the menu so best scores are current.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = NewMenuModel(m.store, m.config, m.opts.LevelDir)
	return m, m.screen.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.done = true
	return m, tea.Quit
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.done {
		return ""
	}
	return m.screen.View()
}
