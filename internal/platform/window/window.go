// Package window runs the platformer in a desktop window with ebiten.
package window

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tilejump/internal/core"
	"github.com/vovakirdan/tilejump/internal/games/platformer"
	"github.com/vovakirdan/tilejump/internal/storage"
	"github.com/vovakirdan/tilejump/internal/tilemap"
)

// Default window geometry, in logical pixels.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// DeathDelay is how long the death screen stays up before the window closes.
const DeathDelay = 1500 * time.Millisecond

// Options configure the window frontend.
type Options struct {
	Width, Height int     // logical size; zero selects the defaults
	Scale         float64 // window size multiplier; zero means 1
	TickRate      int
	AssetDir      string // directory with the png and wav assets; empty generates them
	Muted         bool
	Store         *storage.Store
	Logger        *log.Logger
}

// Game adapts a platformer.Game to ebiten.Game.
type Game struct {
	game    *platformer.Game
	runtime core.RuntimeConfig
	sprites *Sprites
	sounds  *SoundBank
	store   *storage.Store
	logger  *log.Logger

	lastState  core.GameState
	deathTicks int // ticks left before closing after death, -1 when not dying
	runSaved   bool
}

// New creates the window game. The platformer is reset immediately, so a
// missing level is reported through game.Err before the window opens.
func New(game *platformer.Game, opts Options) *Game {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = DefaultWidth, DefaultHeight
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 30
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	rt := core.RuntimeConfig{
		ScreenW:  opts.Width,
		ScreenH:  opts.Height,
		CellW:    1,
		CellH:    1,
		TickRate: opts.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	game.Reset(rt)

	sounds := NewSoundBank(audioContext(), opts.AssetDir, logger)
	sounds.SetMuted(opts.Muted)

	return &Game{
		game:       game,
		runtime:    rt,
		sprites:    LoadSprites(opts.AssetDir, logger),
		sounds:     sounds,
		store:      opts.Store,
		logger:     logger,
		deathTicks: -1,
	}
}

var sharedAudio *audio.Context

// audioContext returns the process-wide audio context; ebiten allows only one.
func audioContext() *audio.Context {
	if sharedAudio == nil {
		sharedAudio = audio.NewContext(SampleRate)
	}
	return sharedAudio
}

// Update advances the simulation by one tick.
func (g *Game) Update() error {
	in := ReadInput(ebiten.IsKeyPressed, inpututil.IsKeyJustPressed)

	if in.Has(core.ActionQuit) {
		g.recordRun(core.OutcomeQuit)
		return ebiten.Termination
	}
	if in.Has(core.ActionRestart) && (g.lastState.GameOver || g.lastState.Paused) {
		g.recordRun(core.OutcomeQuit)
		g.restart()
		return nil
	}

	if g.deathTicks > 0 {
		g.deathTicks--
		if g.deathTicks == 0 {
			return ebiten.Termination
		}
	}

	res := g.game.Step(in)
	g.lastState = res.State
	g.sounds.Play(res.Events)

	for _, e := range res.Events {
		switch e {
		case core.EventPlayerDied, core.EventPlayerFell:
			g.logger.Info("you died", "level", g.game.Level().ID, "score", res.State.Score)
			g.deathTicks = ticksFor(DeathDelay, g.runtime.TickRate)
		case core.EventLevelCleared:
			g.logger.Info("level cleared", "level", g.game.Level().ID, "score", res.State.Score)
		}
	}
	if res.State.GameOver {
		g.recordRun(core.OutcomeNone)
	}
	return nil
}

func ticksFor(d time.Duration, tickRate int) int {
	return max(1, int(math.Ceil(d.Seconds()*float64(tickRate))))
}

func (g *Game) restart() {
	g.runtime.Seed = time.Now().UnixNano()
	g.game.Reset(g.runtime)
	g.lastState = g.game.State()
	g.deathTicks = -1
	g.runSaved = false
}

// recordRun saves the run once. Unfinished runs are saved with the given
// outcome if at least one tick was played.
func (g *Game) recordRun(early core.Outcome) {
	if g.runSaved {
		return
	}
	run := g.game.RunSummary()
	if !g.lastState.GameOver {
		if run.Ticks == 0 {
			return
		}
		run.Outcome = early
	}
	g.runSaved = true
	if g.store == nil {
		return
	}
	if _, err := g.store.SaveRun(run); err != nil {
		g.logger.Warn("could not save run", "error", err)
		return
	}
	g.logger.Debug("run saved", "level", run.LevelID, "score", run.Score, "outcome", run.Outcome)
}

// Draw renders the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	w, h := float64(g.runtime.ScreenW), float64(g.runtime.ScreenH)
	g.sprites.Draw(screen, SpriteBackground, 0, 0, w, h)

	snap := g.game.Snapshot()
	ox, oy := snap.View.X, snap.View.Y
	g.drawTiles(screen, snap.View)

	for _, e := range snap.Enemies {
		g.drawRect(screen, SpriteEnemy, e.Rect, ox, oy)
	}
	for _, b := range snap.Bullets {
		g.drawRect(screen, SpriteBullet, b.Rect, ox, oy)
	}
	player := SpritePlayerRight
	if snap.PlayerFacing < 0 {
		player = SpritePlayerLeft
	}
	g.drawRect(screen, player, snap.Player, ox, oy)

	lvl := g.game.Level()
	hud := fmt.Sprintf("%s   Score: %d   Enemies: %d", lvl.Title(), snap.State.Score, len(snap.Enemies))
	text.Draw(screen, hud, basicfont.Face7x13, 8, 16, color.White)

	switch {
	case snap.State.Paused:
		drawCenterPanel(screen, "PAUSED", "P to resume")
	case snap.State.Won:
		drawCenterPanel(screen, "LEVEL CLEARED", fmt.Sprintf("Score %d   R to play again", snap.State.Score))
	case snap.State.GameOver:
		drawCenterPanel(screen, "YOU DIED", fmt.Sprintf("Score %d   R to restart", snap.State.Score))
	}
}

func (g *Game) drawRect(screen *ebiten.Image, sprite string, r core.RectF, ox, oy float64) {
	g.sprites.Draw(screen, sprite, r.X-ox, r.Y-oy, r.W, r.H)
}

// drawTiles fills every visible tile with its colour. Platforms are drawn as
// a thin strip along the top of the tile.
func (g *Game) drawTiles(screen *ebiten.Image, view core.RectF) {
	m := g.game.Level().Map
	tw, th := float64(m.TileW), float64(m.TileH)
	c0, c1 := int(math.Floor(view.X/tw)), int(math.Ceil((view.X+view.W)/tw))
	r0, r1 := int(math.Floor(view.Y/th)), int(math.Ceil((view.Y+view.H)/th))

	for row := max(r0, 0); row < min(r1, m.Rows); row++ {
		for col := max(c0, 0); col < min(c1, m.Cols); col++ {
			kind := m.Tiles.At(col, row)
			if kind == tilemap.TileEmpty {
				continue
			}
			_, c := m.Tiles.Glyph(col, row)
			x := float32(float64(col)*tw - view.X)
			y := float32(float64(row)*th - view.Y)
			hgt := float32(th)
			if kind == tilemap.TilePlatform {
				hgt = float32(th / 4)
			}
			vector.DrawFilledRect(screen, x, y, float32(tw), hgt, tileColor(c), false)
		}
	}
}

func tileColor(c core.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

const (
	panelW = 320
	panelH = 72
)

func drawCenterPanel(screen *ebiten.Image, line1, line2 string) {
	b := screen.Bounds()
	px := float32(b.Dx()-panelW) / 2
	py := float32(b.Dy()-panelH) / 2
	vector.DrawFilledRect(screen, px, py, panelW, panelH, color.RGBA{0, 0, 0, 200}, false)

	face := basicfont.Face7x13
	for i, line := range []string{line1, line2} {
		w := text.BoundString(face, line).Dx()
		x := int(px) + (panelW-w)/2
		y := int(py) + 28 + i*22
		text.Draw(screen, line, face, x, y, color.White)
	}
}

// Layout fixes the logical screen size; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.runtime.ScreenW, g.runtime.ScreenH
}

// Run opens the window and blocks until it is closed.
func Run(game *platformer.Game, opts Options) error {
	g := New(game, opts)

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowTitle(game.Title() + " - " + game.Level().Title())
	ebiten.SetWindowSize(int(float64(g.runtime.ScreenW)*scale), int(float64(g.runtime.ScreenH)*scale))
	ebiten.SetTPS(g.runtime.TickRate)

	err := ebiten.RunGame(g)
	g.recordRun(core.OutcomeQuit)
	return err
}
