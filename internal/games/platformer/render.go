package platformer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tilejump/internal/core"
)

// Visual characters for rendering
const (
	PlayerRightChar = '▶'
	PlayerLeftChar  = '◀'
	PlayerBodyChar  = '█'
	EnemyChar       = '▚'
	BulletChar      = '•'
)

// Render draws the visible part of the map, the entities and the HUD.
// World pixels map onto cells of RuntimeConfig.CellW x CellH.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if !g.initialized {
		return
	}

	ox, oy := g.view.Origin()
	cw, ch := g.cellSize()
	g.drawTiles(dst, ox, oy, cw, ch)

	for _, e := range g.enemies {
		dst.FillRect(e.Rect.ToCells(ox, oy, cw, ch), EnemyChar, core.ColorRed)
	}
	for _, b := range g.bullets {
		dst.FillRect(b.Rect.ToCells(ox, oy, cw, ch), BulletChar, core.ColorBrightYellow)
	}
	g.drawPlayer(dst, ox, oy, cw, ch)

	hud := fmt.Sprintf(" %s  Score: %d  Enemies: %d ", g.level.Title(), g.score, len(g.enemies))
	dst.DrawText(1, 0, hud)

	switch {
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case g.won:
		g.drawCenteredMessage(dst, "LEVEL CLEARED", fmt.Sprintf("Score: %d  |  Press R to play again", g.score))
	case g.gameOver:
		g.drawCenteredMessage(dst, "YOU DIED", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

func (g *Game) cellSize() (float64, float64) {
	cw, ch := g.runtime.CellW, g.runtime.CellH
	if cw <= 0 {
		cw = 1
	}
	if ch <= 0 {
		ch = 1
	}
	return float64(cw), float64(ch)
}

// drawTiles samples the tile under the center of every screen cell.
func (g *Game) drawTiles(dst *core.Screen, ox, oy, cw, ch float64) {
	m := g.level.Map
	tw, th := float64(m.TileW), float64(m.TileH)
	for sy := 0; sy < dst.Height(); sy++ {
		wy := oy + (float64(sy)+0.5)*ch
		if wy < 0 || wy >= m.PixelHeight() {
			continue
		}
		row := int(math.Floor(wy / th))
		for sx := 0; sx < dst.Width(); sx++ {
			wx := ox + (float64(sx)+0.5)*cw
			if wx < 0 || wx >= m.PixelWidth() {
				continue
			}
			if r, c := m.Tiles.Glyph(int(math.Floor(wx/tw)), row); r != ' ' {
				dst.SetColor(sx, sy, r, c)
			}
		}
	}
}

func (g *Game) drawPlayer(dst *core.Screen, ox, oy, cw, ch float64) {
	p := g.player
	color := core.ColorBrightCyan
	if p.Dead {
		color = core.ColorGray
	}
	r := p.Rect.ToCells(ox, oy, cw, ch)
	dst.FillRect(r, PlayerBodyChar, color)

	face := PlayerRightChar
	x := r.Right() - 1
	if p.Facing < 0 {
		face = PlayerLeftChar
		x = r.X
	}
	dst.SetColor(x, r.Y, face, color)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	dst.DrawText(box.X+(boxW-len(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}
