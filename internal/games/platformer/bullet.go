package platformer

import (
	"github.com/vovakirdan/tilejump/internal/core"
)

// Bullet is a shot fired by the player. It flies straight until it hits an
// enemy, leaves the view or its lifespan runs out.
type Bullet struct {
	Rect     core.RectF
	Dir      int
	Lifespan float64 // seconds left
}

// newBullet spawns a bullet at the mid edge of the shooter's facing side.
func (g *Game) newBullet(shooter core.RectF, facing int) *Bullet {
	w, h := g.cfg.Bullet.Width, g.cfg.Bullet.Height
	var x, y float64
	if facing > 0 {
		x, y = shooter.MidRight()
	} else {
		x, y = shooter.MidLeft()
		x -= w
	}
	return &Bullet{
		Rect:     core.NewRectF(x, y-h/2, w, h),
		Dir:      facing,
		Lifespan: g.cfg.Bullet.Lifespan,
	}
}

// updateBullets advances the first n bullets; bullets appended after them
// were fired this tick and are kept as they are.
func (g *Game) updateBullets(n int, dt float64) {
	view := g.view.Rect()
	kept := g.bullets[:0]
	for i, b := range g.bullets {
		if i >= n {
			kept = append(kept, b)
			continue
		}
		if g.updateBullet(b, view, dt) {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(g.bullets); i++ {
		g.bullets[i] = nil
	}
	g.bullets = kept
}

// updateBullet moves one bullet and reports whether it is still alive.
func (g *Game) updateBullet(b *Bullet, view core.RectF, dt float64) bool {
	b.Lifespan -= dt
	if b.Lifespan <= 0 {
		return false
	}
	b.Rect.X += float64(b.Dir) * g.cfg.Bullet.Speed * dt

	hit := false
	alive := g.enemies[:0]
	for _, e := range g.enemies {
		if e.Rect.Intersects(b.Rect) {
			hit = true
			g.kills++
			g.score += g.cfg.Scoring.KillPoints
			g.emit(core.EventEnemyKilled)
			continue
		}
		alive = append(alive, e)
	}
	for i := len(alive); i < len(g.enemies); i++ {
		g.enemies[i] = nil
	}
	g.enemies = alive

	return !hit && b.Rect.Intersects(view)
}
