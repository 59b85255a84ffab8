package platformer

import (
	"github.com/vovakirdan/tilejump/internal/core"
	"github.com/vovakirdan/tilejump/internal/tilemap"
)

// Enemy patrols horizontally between reverse markers.
type Enemy struct {
	Rect core.RectF
	Dir  int // 1 right, -1 left
}

func (g *Game) updateEnemies(dt float64) {
	speed := g.difficulty.Speed(g.cfg.Enemy.Speed, g.score, int(g.tickCount))
	for _, e := range g.enemies {
		e.update(g.level.Map.Triggers, speed*dt)
		if e.Rect.Intersects(g.player.Rect) {
			g.killPlayer(core.OutcomeDied, core.EventPlayerDied)
		}
	}
}

// update moves the enemy by step pixels. On touching a reverse marker the
// enemy is snapped back to the marker's near edge and turns around; only the
// first marker hit counts.
func (e *Enemy) update(triggers *tilemap.TriggerLayer, step float64) {
	e.Rect.X += float64(e.Dir) * step
	for _, c := range triggers.Collide(e.Rect, tilemap.PropReverse) {
		if e.Dir > 0 {
			e.Rect.SetRight(c.Left)
		} else {
			e.Rect.SetLeft(c.Right())
		}
		e.Dir = -e.Dir
		break
	}
}
