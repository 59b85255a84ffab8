package platformer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tilejump/internal/config"
	"github.com/vovakirdan/tilejump/internal/core"
	"github.com/vovakirdan/tilejump/internal/level"
	"github.com/vovakirdan/tilejump/internal/registry"
)

// 640x480 world pixels at 30 ticks per second.
var testRuntime = core.RuntimeConfig{ScreenW: 640, ScreenH: 480, CellW: 1, CellH: 1, TickRate: 30}

func testLevel(t *testing.T, rows ...string) level.Level {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("id: test\nname: Test\ntile: {w: 32, h: 32}\nrows:\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "  - %q\n", r)
	}
	lvl, err := level.Parse([]byte(sb.String()), ".yaml", "test")
	require.NoError(t, err)
	return lvl
}

func testConfig() config.PlatformerConfig {
	cfg := config.DefaultPlatformerConfig()
	cfg.Difficulty.Enabled = false
	return cfg
}

func newTestGame(t *testing.T, rows ...string) *Game {
	t.Helper()
	g := NewWithLevel(testLevel(t, rows...), testConfig())
	g.Reset(testRuntime)
	return g
}

func stepN(g *Game, n int, in core.InputFrame) []core.Event {
	var events []core.Event
	for i := 0; i < n; i++ {
		events = append(events, g.Step(in).Events...)
	}
	return events
}

func countEvents(events []core.Event, e core.Event) int {
	n := 0
	for _, ev := range events {
		if ev == e {
			n++
		}
	}
	return n
}

func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 60; i++ {
		g.Step(core.InputOf())
		if g.player.Resting {
			return
		}
	}
	t.Fatal("player never came to rest")
}

var room = []string{
	"#......#",
	"#..P...#",
	"#......#",
	"########",
}

func TestGameRegistered(t *testing.T) {
	require.True(t, registry.Exists(GameID))
	g, err := registry.Create(GameID)
	require.NoError(t, err)
	assert.IsType(t, &Game{}, g)
	assert.Equal(t, "Tile Jump", g.Title())
}

func TestResetPlacesEntities(t *testing.T) {
	g := newTestGame(t,
		"#........#",
		"#.P...E..#",
		"##########",
	)
	s := g.Snapshot()

	assert.Equal(t, core.NewRectF(64, 32, 24, 32), s.Player)
	assert.Equal(t, 1, s.PlayerFacing)
	require.Len(t, s.Enemies, 1)
	assert.Equal(t, core.NewRectF(192, 32, 32, 32), s.Enemies[0].Rect)
	assert.Empty(t, s.Bullets)
	assert.Equal(t, "test", s.LevelID)
	assert.False(t, s.State.GameOver)
}

func TestPlayerFallsAndLands(t *testing.T) {
	g := newTestGame(t, room...)

	events := stepN(g, 20, core.InputOf())
	s := g.Snapshot()

	assert.True(t, s.PlayerResting)
	assert.Equal(t, 96.0, s.Player.Bottom(), "player rests on the ground row")
	assert.Equal(t, 0.0, s.PlayerDY)
	assert.Equal(t, 1, countEvents(events, core.EventLand), "landing is reported once")
}

func TestJump(t *testing.T) {
	g := newTestGame(t, room...)
	settle(t, g)
	startY := g.player.Rect.Y

	res := g.Step(core.InputOf(core.ActionJump))
	assert.True(t, res.Has(core.EventJump))
	assert.InDelta(t, -460.0, g.player.DY, 1e-9)
	assert.Less(t, g.player.Rect.Y, startY)
	assert.False(t, g.player.Resting)

	res = g.Step(core.InputOf(core.ActionJump))
	assert.False(t, res.Has(core.EventJump), "no jumping in mid-air")

	events := stepN(g, 60, core.InputOf())
	assert.Equal(t, 1, countEvents(events, core.EventLand))
	assert.Equal(t, startY, g.player.Rect.Y)
}

func TestWallsBlockRunning(t *testing.T) {
	g := newTestGame(t, room...)
	settle(t, g)

	stepN(g, 60, core.InputOf(core.ActionRight))
	assert.Equal(t, 224.0, g.player.Rect.Right(), "stopped by the right wall")
	assert.Equal(t, 1, g.player.Facing)
	assert.True(t, g.player.Resting)

	stepN(g, 60, core.InputOf(core.ActionLeft))
	assert.Equal(t, 32.0, g.player.Rect.Left(), "stopped by the left wall")
	assert.Equal(t, -1, g.player.Facing)
}

func TestHeadBumpsCeiling(t *testing.T) {
	g := newTestGame(t,
		"#####",
		"#...#",
		"#.P.#",
		"#####",
	)
	settle(t, g)

	g.Step(core.InputOf(core.ActionJump))
	bumped := false
	for i := 0; i < 30; i++ {
		g.Step(core.InputOf())
		require.GreaterOrEqual(t, g.player.Rect.Top(), 32.0, "tick %d", i)
		if g.player.Rect.Top() == 32 && g.player.DY == 0 {
			bumped = true
		}
	}
	assert.True(t, bumped, "the ceiling stops the jump")
	assert.True(t, g.player.Resting)
}

func TestOneWayPlatform(t *testing.T) {
	g := newTestGame(t,
		"#......#",
		"#......#",
		"#......#",
		"#.===..#",
		"#..P...#",
		"########",
	)
	settle(t, g)
	assert.Equal(t, 160.0, g.player.Rect.Bottom())

	g.Step(core.InputOf(core.ActionJump))
	stepN(g, 40, core.InputOf())

	assert.True(t, g.player.Resting)
	assert.Equal(t, 96.0, g.player.Rect.Bottom(), "jumped through from below and landed on top")
}

func TestShootingCooldown(t *testing.T) {
	g := newTestGame(t, room...)
	settle(t, g)

	res := g.Step(core.InputOf(core.ActionShoot))
	require.True(t, res.Has(core.EventShoot))
	assert.Greater(t, g.player.Cooldown, 0.0)
	assert.Less(t, g.player.Cooldown, 0.2)

	events := stepN(g, 29, core.InputOf(core.ActionShoot))
	assert.Equal(t, 4, countEvents(events, core.EventShoot), "one shot per 0.2s while held")
}

func TestBulletSpawnsAtFacingEdge(t *testing.T) {
	g := newTestGame(t, room...)
	settle(t, g)
	p := g.player.Rect

	g.Step(core.InputOf(core.ActionShoot))
	require.Len(t, g.bullets, 1)
	b := g.bullets[0]
	assert.Equal(t, p.Right(), b.Rect.Left(), "bullets fired this tick do not move yet")
	_, midY := p.MidRight()
	_, by := b.Rect.Center()
	assert.Equal(t, midY, by)
	assert.Equal(t, 1, b.Dir)

	stepN(g, 10, core.InputOf())
	g.Step(core.InputOf(core.ActionLeft, core.ActionShoot))
	require.Len(t, g.bullets, 2)
	left := g.bullets[1]
	assert.Equal(t, g.player.Rect.Left(), left.Rect.Right())
	assert.Equal(t, -1, left.Dir)
}

func corridor(cols int) []string {
	wide := "#" + strings.Repeat(".", cols-2) + "#"
	ground := strings.Repeat("#", cols)
	start := []byte(wide)
	start[2] = 'P'
	return []string{wide, string(start), ground}
}

func TestBulletLifespanDecreases(t *testing.T) {
	g := newTestGame(t, corridor(40)...)
	settle(t, g)

	g.Step(core.InputOf(core.ActionShoot))
	require.Len(t, g.bullets, 1)
	x0 := g.bullets[0].Rect.X

	g.Step(core.InputOf())
	require.Len(t, g.bullets, 1)
	assert.InDelta(t, 1-1.0/30, g.bullets[0].Lifespan, 1e-9)
	assert.InDelta(t, x0+400.0/30, g.bullets[0].Rect.X, 1e-9)

	stepN(g, 20, core.InputOf())
	require.Len(t, g.bullets, 1, "still flying inside the view")

	stepN(g, 15, core.InputOf())
	assert.Empty(t, g.bullets, "expired after one second")
}

func TestBulletDiesOutsideView(t *testing.T) {
	lvl := testLevel(t, corridor(40)...)
	cfg := testConfig()
	cfg.Bullet.Lifespan = 10
	g := NewWithLevel(lvl, cfg)
	g.Reset(testRuntime)
	settle(t, g)

	g.Step(core.InputOf(core.ActionShoot))
	stepN(g, 30, core.InputOf())
	require.Len(t, g.bullets, 1)
	assert.Less(t, g.bullets[0].Rect.Left(), 640.0)

	stepN(g, 30, core.InputOf())
	assert.Empty(t, g.bullets, "left the 640px view")
}

func TestBulletKillsEnemyAndClearsLevel(t *testing.T) {
	g := newTestGame(t,
		"#..............#",
		"#.P...|.E...|..#",
		"################",
	)
	settle(t, g)

	var events []core.Event
	events = append(events, g.Step(core.InputOf(core.ActionShoot)).Events...)
	events = append(events, stepN(g, 40, core.InputOf())...)

	assert.Equal(t, 1, countEvents(events, core.EventEnemyKilled))
	assert.Equal(t, 1, countEvents(events, core.EventLevelCleared))
	assert.Empty(t, g.enemies)
	assert.Empty(t, g.bullets, "the bullet dies with the enemy")

	st := g.State()
	assert.True(t, st.GameOver)
	assert.True(t, st.Won)
	assert.Equal(t, 600, st.Score)

	sum := g.RunSummary()
	assert.Equal(t, core.OutcomeCleared, sum.Outcome)
	assert.Equal(t, 1, sum.Kills)
	assert.Equal(t, "test", sum.LevelID)
}

func TestEnemyReversesAtMarkers(t *testing.T) {
	g := newTestGame(t,
		"#..........#",
		"#P..|.E..|.#",
		"############",
	)
	require.Len(t, g.enemies, 1)
	e := g.enemies[0]

	sawLeft, sawRight := false, false
	for i := 0; i < 120; i++ {
		g.Step(core.InputOf())
		require.GreaterOrEqual(t, e.Rect.Left(), 160.0, "tick %d", i)
		require.LessOrEqual(t, e.Rect.Right(), 288.0, "tick %d", i)
		if e.Rect.Right() == 288 && e.Dir == -1 {
			sawRight = true
		}
		if e.Rect.Left() == 160 && e.Dir == 1 {
			sawLeft = true
		}
	}
	assert.True(t, sawRight, "turned at the right marker")
	assert.True(t, sawLeft, "turned at the left marker")
	assert.False(t, g.State().GameOver)
}

func TestEnemyKillsPlayer(t *testing.T) {
	g := newTestGame(t,
		"#........#",
		"#|.E..P..#",
		"##########",
	)

	events := stepN(g, 40, core.InputOf())
	assert.Equal(t, 1, countEvents(events, core.EventPlayerDied))

	st := g.State()
	assert.True(t, st.GameOver)
	assert.False(t, st.Won)
	assert.Equal(t, core.OutcomeDied, g.RunSummary().Outcome)

	before := g.Snapshot()
	res := g.Step(core.InputOf(core.ActionRight))
	assert.Empty(t, res.Events)
	assert.Equal(t, before, g.Snapshot(), "nothing moves after game over")
}

func TestFallingOffTheMap(t *testing.T) {
	g := newTestGame(t,
		"#...#",
		"#.P.#",
		"##.##",
	)

	events := stepN(g, 60, core.InputOf())
	assert.Equal(t, 1, countEvents(events, core.EventPlayerFell))
	assert.Zero(t, countEvents(events, core.EventLand))
	assert.True(t, g.State().GameOver)
	assert.Equal(t, core.OutcomeFell, g.RunSummary().Outcome)
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t, room...)
	settle(t, g)

	res := g.Step(core.InputOf(core.ActionPause))
	assert.True(t, res.State.Paused)
	frozen := g.Snapshot()

	stepN(g, 10, core.InputOf(core.ActionRight))
	assert.Equal(t, frozen, g.Snapshot())

	res = g.Step(core.InputOf(core.ActionPause, core.ActionRight))
	assert.False(t, res.State.Paused)
	assert.Greater(t, g.player.Rect.X, frozen.Player.X)
}

func TestCameraFollowsPlayer(t *testing.T) {
	g := newTestGame(t, corridor(40)...)
	settle(t, g)
	startFocus := g.view.FX
	assert.Equal(t, 320.0, startFocus, "clamped to the left edge of the map")

	stepN(g, 60, core.InputOf(core.ActionRight))
	px, _ := g.player.Rect.Center()
	assert.Greater(t, g.view.FX, startFocus)
	assert.Less(t, g.view.FX, px, "the camera trails the player")

	stepN(g, 90, core.InputOf())
	assert.InDelta(t, px, g.view.FX, 1.0, "the camera catches up once the player stops")
}

func newMeadowGame(t *testing.T) *Game {
	t.Helper()
	lvl, err := level.Builtin("01-meadow")
	require.NoError(t, err)
	g := NewWithLevel(lvl, testConfig())
	g.Reset(testRuntime)
	settle(t, g)
	return g
}

func TestRunAcrossFloorSeams(t *testing.T) {
	g := newMeadowGame(t)
	require.Equal(t, 64.0, g.player.Rect.X)
	require.Equal(t, 416.0, g.player.Rect.Bottom())

	for i := 0; i < 30; i++ {
		g.Step(core.InputOf(core.ActionRight))
		require.True(t, g.player.Resting, "tick %d: lost the floor", i)
		require.Equal(t, 416.0, g.player.Rect.Bottom(), "tick %d", i)
	}
	assert.InDelta(t, 364.0, g.player.Rect.X, 1e-6, "ran 300 px over eleven floor cells")
	assert.False(t, g.State().GameOver)
}

func TestPlayMeadow(t *testing.T) {
	g := newMeadowGame(t)
	require.Len(t, g.enemies, 2)

	stepN(g, 10, core.InputOf(core.ActionRight))
	assert.InDelta(t, 164.0, g.player.Rect.X, 1e-6)

	events := stepN(g, 1, core.InputOf(core.ActionShoot))
	events = append(events, stepN(g, 25, core.InputOf())...)
	assert.Equal(t, 1, countEvents(events, core.EventShoot))
	assert.Equal(t, 1, countEvents(events, core.EventEnemyKilled), "the patrolling enemy is shot")
	assert.Len(t, g.enemies, 1)
	assert.Equal(t, 100, g.State().Score)

	stepN(g, 14, core.InputOf(core.ActionRight))
	assert.InDelta(t, 304.0, g.player.Rect.X, 1e-6, "standing under the first platform")

	events = stepN(g, 1, core.InputOf(core.ActionJump))
	events = append(events, stepN(g, 20, core.InputOf())...)
	assert.Equal(t, 1, countEvents(events, core.EventJump))
	assert.Equal(t, 1, countEvents(events, core.EventLand))
	assert.True(t, g.player.Resting)
	assert.Equal(t, 320.0, g.player.Rect.Bottom(), "landed on the platform")
	assert.False(t, g.State().GameOver)
}

func TestCameraAlphaIsFrameRateIndependent(t *testing.T) {
	cam := config.PlatformerCamera{Smoothing: 6, ReferenceFPS: 30}

	assert.InDelta(t, 1.0/6, cameraAlpha(cam, 1.0/30), 1e-12)

	a60 := cameraAlpha(cam, 1.0/60)
	twoSteps := 1 - (1-a60)*(1-a60)
	assert.InDelta(t, 1.0/6, twoSteps, 1e-12)

	assert.Equal(t, 1.0, cameraAlpha(config.PlatformerCamera{Smoothing: 1}, 1.0/30))
}

func TestDeterminism(t *testing.T) {
	lvl, err := level.Builtin(level.DefaultID())
	require.NoError(t, err)

	script := func(tick int) core.InputFrame {
		in := core.NewInputFrame()
		switch {
		case tick%90 < 50:
			in.Set(core.ActionRight)
		case tick%90 < 70:
			in.Set(core.ActionLeft)
		}
		if tick%37 == 0 {
			in.Set(core.ActionJump)
		}
		if tick%11 == 0 {
			in.Set(core.ActionShoot)
		}
		return in
	}

	a := NewWithLevel(lvl, testConfig())
	b := NewWithLevel(lvl, testConfig())
	a.Reset(testRuntime)
	b.Reset(testRuntime)

	for tick := 0; tick < 600; tick++ {
		ra := a.Step(script(tick))
		rb := b.Step(script(tick))
		require.Equal(t, ra, rb, "tick %d", tick)
		require.Equal(t, a.Snapshot(), b.Snapshot(), "tick %d", tick)
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	g := newTestGame(t, corridor(20)...)
	initial := g.Snapshot()

	stepN(g, 30, core.InputOf(core.ActionRight, core.ActionShoot))
	require.NotEqual(t, initial, g.Snapshot())

	g.Reset(testRuntime)
	assert.Equal(t, initial, g.Snapshot())
}

func TestSelectLevelFallsBackToDefault(t *testing.T) {
	g := New()
	g.SelectLevel("no-such-level")
	g.Reset(testRuntime)

	assert.ErrorIs(t, g.Err(), level.ErrNotFound)
	assert.Equal(t, level.DefaultID(), g.Level().ID)

	g.SelectLevel("02-tower")
	g.Reset(testRuntime)
	assert.NoError(t, g.Err())
	assert.Equal(t, "02-tower", g.Level().ID)
}

func TestRender(t *testing.T) {
	g := NewWithLevel(testLevel(t,
		"#........#",
		"#.P...E..#",
		"##########",
	), testConfig())
	g.Reset(core.DefaultConfig())

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	out := scr.String()

	assert.Contains(t, out, "Score: 0")
	assert.Contains(t, out, "Enemies: 1")
	assert.Contains(t, out, string(PlayerRightChar))
	assert.Contains(t, out, string(EnemyChar))

	// Map row 2 is ground; cells are 16x32 px
	cell := scr.GetCell(10, 2)
	assert.Equal(t, '█', cell.Rune)
	assert.Equal(t, core.ColorBrown, cell.Color)

	g.Step(core.InputOf(core.ActionPause))
	g.Render(scr)
	assert.Contains(t, scr.String(), "PAUSED")
}

func TestRenderDeathBanner(t *testing.T) {
	g := newTestGame(t,
		"#...#",
		"#.P.#",
		"##.##",
	)
	stepN(g, 60, core.InputOf())
	require.True(t, g.State().GameOver)

	scr := core.NewScreen(40, 12)
	g.Render(scr)
	assert.Contains(t, scr.String(), "YOU DIED")
}

func TestResizeKeepsRun(t *testing.T) {
	g := newTestGame(t, corridor(40)...)
	stepN(g, 10, core.InputOf(core.ActionRight))
	before := g.player.Rect

	rt := testRuntime
	rt.ScreenW, rt.ScreenH = 320, 240
	g.Resize(rt)

	assert.Equal(t, before, g.player.Rect, "resizing must not restart the run")
	assert.Equal(t, 320.0, g.view.W)
	assert.Equal(t, 240.0, g.view.H)
	assert.Equal(t, uint64(10), g.tickCount)
}
