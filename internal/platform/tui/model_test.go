package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilejump/internal/core"
	"github.com/vovakirdan/tilejump/internal/storage"
)

// fakeGame records its inputs and ends the run after endAfter steps.
type fakeGame struct {
	inputs   []core.InputFrame
	resets   int
	resizes  int
	endAfter int
	paused   bool
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.inputs = nil
	g.paused = false
}

func (g *fakeGame) Resize(core.RuntimeConfig) { g.resizes++ }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Render(*core.Screen) {}

func (g *fakeGame) State() core.GameState {
	over := g.endAfter > 0 && len(g.inputs) >= g.endAfter
	return core.GameState{Score: 10 * len(g.inputs), GameOver: over, Paused: g.paused}
}

func (g *fakeGame) RunSummary() core.RunSummary {
	outcome := core.OutcomeNone
	if g.State().GameOver {
		outcome = core.OutcomeDied
	}
	return core.RunSummary{LevelID: "room", Score: g.State().Score, Ticks: len(g.inputs), Outcome: outcome}
}

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestModel(t *testing.T, g *fakeGame, store *storage.Store) (Model, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Unix(100, 0)}
	m := NewModel(g, store, core.DefaultConfig(), Options{
		HoldWindow: 100 * time.Millisecond,
		AllowBack:  true,
		Now:        clock.Now,
	})
	m.Init()
	return m, clock
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	return update(t, m, TickMsg{Loop: m.loop})
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelHeldKeys(t *testing.T) {
	g := &fakeGame{}
	m, clock := newTestModel(t, g, nil)

	m = update(t, m, runeKey('d'))
	m = tick(t, m)
	clock.now = clock.now.Add(50 * time.Millisecond)
	m = tick(t, m)
	clock.now = clock.now.Add(100 * time.Millisecond)
	tick(t, m)

	if len(g.inputs) != 3 {
		t.Fatalf("steps = %d, want 3", len(g.inputs))
	}
	if !g.inputs[0].Has(core.ActionRight) || !g.inputs[1].Has(core.ActionRight) {
		t.Error("right should be held until the window lapses")
	}
	if g.inputs[2].Has(core.ActionRight) {
		t.Error("right should be released after the window")
	}
}

func TestModelPauseIsOneShot(t *testing.T) {
	g := &fakeGame{}
	m, _ := newTestModel(t, g, nil)

	m = update(t, m, runeKey('p'))
	m = tick(t, m)
	tick(t, m)

	if !g.inputs[0].Has(core.ActionPause) {
		t.Error("pause should reach the first tick")
	}
	if g.inputs[1].Has(core.ActionPause) {
		t.Error("pause should not repeat on the next tick")
	}
}

func TestModelJumpTapFiresOnce(t *testing.T) {
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	g := &fakeGame{}
	m, clock := newTestModel(t, g, nil)

	m = update(t, m, space)
	m = update(t, m, runeKey('d'))
	for i := 0; i < 3; i++ {
		m = tick(t, m)
		clock.now = clock.now.Add(20 * time.Millisecond)
	}

	jumps := 0
	for i, in := range g.inputs {
		if in.Has(core.ActionJump) {
			jumps++
		}
		if !in.Has(core.ActionRight) {
			t.Errorf("tick %d: right should stay held", i)
		}
	}
	if jumps != 1 || !g.inputs[0].Has(core.ActionJump) {
		t.Errorf("one tap jumped on %d ticks, want only the first", jumps)
	}

	m = update(t, m, space)
	tick(t, m)
	if !g.inputs[3].Has(core.ActionJump) {
		t.Error("a second tap should jump again")
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	g := &fakeGame{}
	m, _ := newTestModel(t, g, nil)

	update(t, m, TickMsg{Loop: m.loop + 1000})
	if len(g.inputs) != 0 {
		t.Errorf("tick from another loop stepped the game %d times", len(g.inputs))
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &fakeGame{}
	m, _ := newTestModel(t, g, nil)

	update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if g.resizes != 1 || g.resets != 1 {
		t.Errorf("resizes = %d, resets = %d; want 1, 1", g.resizes, g.resets)
	}
}

func openModelStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestModelSavesRunOnce(t *testing.T) {
	store := openModelStore(t)
	g := &fakeGame{endAfter: 3}
	m, _ := newTestModel(t, g, store)

	for i := 0; i < 6; i++ {
		m = tick(t, m)
	}

	runs, err := store.TopRuns("room", 10)
	if err != nil {
		t.Fatalf("TopRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	if runs[0].Outcome != core.OutcomeDied {
		t.Errorf("Outcome = %q, want %q", runs[0].Outcome, core.OutcomeDied)
	}

	// Restarting after game over starts a new run without saving again
	m = update(t, m, runeKey('r'))
	tick(t, m)
	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
	runs, _ = store.TopRuns("room", 10)
	if len(runs) != 1 {
		t.Errorf("restart after game over saved again: %d runs", len(runs))
	}
}

func TestModelQuitSavesUnfinishedRun(t *testing.T) {
	store := openModelStore(t)
	g := &fakeGame{}
	m, _ := newTestModel(t, g, store)

	// Nothing has happened yet; quitting saves nothing
	fresh := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !fresh.IsQuitting() {
		t.Fatal("ctrl+c should quit")
	}
	if runs, _ := store.TopRuns("room", 10); len(runs) != 0 {
		t.Fatalf("quit before the first tick saved %d runs", len(runs))
	}

	m = tick(t, m)
	m = tick(t, m)
	update(t, m, runeKey('q'))

	runs, err := store.TopRuns("room", 10)
	if err != nil {
		t.Fatalf("TopRuns() error = %v", err)
	}
	if len(runs) != 1 || runs[0].Outcome != core.OutcomeQuit {
		t.Fatalf("runs = %+v, want one quit run", runs)
	}
}

func TestModelBackToMenu(t *testing.T) {
	g := &fakeGame{}
	m, _ := newTestModel(t, g, nil)

	m = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}

	m = update(t, m, runeKey('p'))
	m = tick(t, m)
	m = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("back should work while paused")
	}
}
