package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilejump/internal/config"
	"github.com/vovakirdan/tilejump/internal/core"
	"github.com/vovakirdan/tilejump/internal/registry"
	"github.com/vovakirdan/tilejump/internal/storage"
)

// Options tune a game model.
type Options struct {
	// HoldWindow is how long a key stays held after its last repeat.
	// Zero selects DefaultHoldWindow.
	HoldWindow time.Duration

	// AllowBack lets B return to the level menu when paused or after game over.
	AllowBack bool

	// Logger receives run results. Nil discards them.
	Logger *log.Logger

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	keys      *KeyMapper
	hold      *HoldTracker
	pending   core.InputFrame // one-shot actions for the next tick
	gameState core.GameState
	logger    *log.Logger
	now       func() time.Time
	allowBack bool
	loop      uint64

	quitting   bool
	backToMenu bool
	runSaved   bool // whether the current run has been recorded
	ticks      int  // ticks stepped in the current run
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		keys:      NewKeyMapper(),
		hold:      NewHoldTracker(opts.HoldWindow),
		pending:   core.NewInputFrame(),
		logger:    logger,
		now:       now,
		allowBack: opts.AllowBack,
		loop:      nextLoop(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.loop, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, quit := m.keys.MapKey(msg)
	if quit {
		m.recordRun(core.OutcomeQuit)
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action == core.ActionNone:
	case IsHeld(action):
		m.hold.Press(action, m.now())
	case action == core.ActionBack:
		if m.allowBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.recordRun(core.OutcomeQuit)
			m.backToMenu = true
		}
	default:
		m.pending.Set(action)
	}

	return m, nil
}

// handleResize adapts the screen and viewport to the new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.ticks = 0
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	if m.pending.Has(core.ActionRestart) {
		m.recordRun(core.OutcomeQuit)
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.ticks = 0
		m.hold.Reset()
		m.pending.Clear()
		return m, tickCmd(m.loop, m.config.TickRate)
	}

	in := m.pending.Clone()
	m.hold.Apply(&in, m.now())
	m.pending.Clear()

	result := m.game.Step(in)
	m.gameState = result.State
	if !result.State.Paused && !result.State.GameOver {
		m.ticks++
	}

	if m.gameState.GameOver {
		m.recordRun(core.OutcomeNone)
	}

	return m, tickCmd(m.loop, m.config.TickRate)
}

// recordRun stores the current run once. Runs that end early are stored
// with the given outcome, provided they got past the first tick.
func (m *Model) recordRun(early core.Outcome) {
	if m.runSaved {
		return
	}
	run := registry.Summarize(m.game)
	if !m.gameState.GameOver {
		if m.ticks == 0 {
			return
		}
		run.Outcome = early
	}
	if run.LevelID == "" {
		run.LevelID = m.game.ID()
	}
	m.runSaved = true

	m.logger.Info("run finished",
		"level", run.LevelID,
		"outcome", run.Outcome,
		"score", run.Score,
		"kills", run.Kills,
		"ticks", run.Ticks,
	)
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := config.UserDir()
	if dir == "" {
		m.logger.Warn("no home directory for screenshots")
		return
	}
	dir = filepath.Join(dir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
