// Package platformer implements a side-scrolling tile platformer.
// The player runs and jumps across a tile map, shoots patrolling enemies and
// clears the level by destroying all of them. Falling off the map or touching
// an enemy ends the run.
package platformer

import (
	"math"

	"github.com/vovakirdan/tilejump/internal/config"
	"github.com/vovakirdan/tilejump/internal/core"
	"github.com/vovakirdan/tilejump/internal/level"
	"github.com/vovakirdan/tilejump/internal/registry"
	"github.com/vovakirdan/tilejump/internal/tilemap"
)

// GameID is the registry ID of the platformer.
const GameID = "platformer"

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// levelRef and levelDir select the level new games start on.
var (
	levelRef string
	levelDir string
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
// Unknown names clear the preset.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLevel selects the level new games load: a built-in ID, an ID under the
// level source directory, or a path to a .tmx/.yaml file.
func SetLevel(ref string) {
	levelRef = ref
}

// SetLevelSource sets the directory searched for level IDs that are not built in.
func SetLevelSource(dir string) {
	levelDir = dir
}

// Game implements the platformer game logic.
type Game struct {
	// Level selection, copied from the package settings by New
	levelRef string
	levelDir string
	fixed    *level.Level
	fixedCfg *config.PlatformerConfig

	level   level.Level
	loadErr error

	player  Player
	enemies []*Enemy
	bullets []*Bullet
	view    *tilemap.Viewport
	events  []core.Event

	score       int
	kills       int
	spawned     int
	tickCount   uint64
	gameOver    bool
	won         bool
	paused      bool
	outcome     core.Outcome
	initialized bool

	runtime    core.RuntimeConfig
	cfg        config.PlatformerConfig
	difficulty *config.DifficultyManager
}

// New creates a game that loads its config and level from the package settings.
func New() *Game {
	return &Game{levelRef: levelRef, levelDir: levelDir}
}

// NewWithLevel creates a game bound to an already loaded level and config.
// The config is used as is; presets are not applied.
func NewWithLevel(lvl level.Level, cfg config.PlatformerConfig) *Game {
	return &Game{fixed: &lvl, fixedCfg: &cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Tile Jump"
}

// SelectLevel switches the level used by the next Reset.
func (g *Game) SelectLevel(ref string) {
	g.levelRef = ref
	g.fixed = nil
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if g.fixedCfg != nil {
		g.cfg = *g.fixedCfg
	} else {
		cfg, err := config.LoadPlatformer(configPath)
		if err != nil {
			cfg = config.DefaultPlatformerConfig()
		}
		if difficultyPreset != "" {
			config.ApplyPlatformerPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.loadLevel()

	g.score = 0
	g.kills = 0
	g.tickCount = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.outcome = core.OutcomeNone
	g.events = nil
	g.bullets = nil

	sx, sy := g.level.PlayerStart()
	g.player = Player{
		Rect:   core.NewRectF(sx, sy, g.cfg.Player.Width, g.cfg.Player.Height),
		Facing: 1,
	}

	spawns := g.level.Map.Triggers.Find(tilemap.PropEnemy)
	g.enemies = make([]*Enemy, 0, len(spawns))
	for _, c := range spawns {
		g.enemies = append(g.enemies, &Enemy{
			Rect: core.NewRectF(c.Left, c.Top, g.cfg.Enemy.Width, g.cfg.Enemy.Height),
			Dir:  1,
		})
	}
	g.spawned = len(g.enemies)

	vw, vh := runtime.ViewportSize()
	g.view = tilemap.NewViewport(g.level.Map, vw, vh)
	g.view.SetFocus(g.player.Rect.Center())
	g.initialized = true
}

// Resize adapts the viewport to a new screen size, keeping the run going.
func (g *Game) Resize(runtime core.RuntimeConfig) {
	g.runtime.ScreenW = runtime.ScreenW
	g.runtime.ScreenH = runtime.ScreenH
	if g.view == nil {
		return
	}
	g.view.Resize(g.runtime.ViewportSize())
}

// loadLevel resolves the selected level. A level that fails to load falls
// back to the default built-in level and the error is kept for Err.
func (g *Game) loadLevel() {
	g.loadErr = nil
	if g.fixed != nil {
		g.level = *g.fixed
		return
	}
	lvl, err := level.Resolve(g.levelRef, g.levelDir)
	if err != nil {
		g.loadErr = err
		lvl, err = level.Resolve("", "")
		if err != nil {
			panic("platformer: built-in levels are broken: " + err.Error())
		}
	}
	g.level = lvl
}

// Err returns the error from the last level load, if the selected level
// could not be loaded and the default level was used instead.
func (g *Game) Err() error {
	return g.loadErr
}

// Step advances the game by one tick of 1/TickRate seconds.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = g.events[:0]

	if g.gameOver {
		return g.result()
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	g.tickCount++
	dt := g.runtime.Dt()

	// Bullets fired this tick start moving next tick
	existing := len(g.bullets)

	g.updatePlayer(in, dt)
	g.updateBullets(existing, dt)
	g.updateEnemies(dt)
	g.updateCamera(dt)

	switch {
	case g.player.Dead:
		g.gameOver = true
	case g.spawned > 0 && len(g.enemies) == 0:
		g.score += g.cfg.Scoring.ClearBonus
		g.gameOver = true
		g.won = true
		g.outcome = core.OutcomeCleared
		g.emit(core.EventLevelCleared)
	}

	return g.result()
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}

func (g *Game) result() core.StepResult {
	var events []core.Event
	if len(g.events) > 0 {
		events = append(events, g.events...)
	}
	return core.StepResult{State: g.State(), Events: events}
}

// killPlayer ends the run with the given outcome. Only the first death counts.
func (g *Game) killPlayer(outcome core.Outcome, ev core.Event) {
	if g.player.Dead {
		return
	}
	g.player.Dead = true
	g.outcome = outcome
	g.emit(ev)
}

// updateCamera moves the focus toward the player. The smoothing factor is
// tuned for ReferenceFPS and rescaled so the camera behaves the same at any
// tick rate.
func (g *Game) updateCamera(dt float64) {
	tx, ty := g.player.Rect.Center()
	alpha := cameraAlpha(g.cfg.Camera, dt)
	g.view.SetFocus(
		g.view.FX+(tx-g.view.FX)*alpha,
		g.view.FY+(ty-g.view.FY)*alpha,
	)
}

func cameraAlpha(c config.PlatformerCamera, dt float64) float64 {
	if c.Smoothing <= 1 {
		return 1
	}
	ref := c.ReferenceFPS
	if ref <= 0 {
		ref = 30
	}
	return 1 - math.Pow(1-1/c.Smoothing, dt*ref)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// RunSummary describes the current run for the score store.
func (g *Game) RunSummary() core.RunSummary {
	return core.RunSummary{
		LevelID: g.level.ID,
		Score:   g.score,
		Kills:   g.kills,
		Ticks:   int(g.tickCount),
		Outcome: g.outcome,
	}
}

// Level returns the level being played.
func (g *Game) Level() level.Level {
	return g.level
}

// Viewport returns the camera viewport.
func (g *Game) Viewport() *tilemap.Viewport {
	return g.view
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
