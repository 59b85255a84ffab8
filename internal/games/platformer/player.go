package platformer

import (
	"math"

	"github.com/vovakirdan/tilejump/internal/core"
	"github.com/vovakirdan/tilejump/internal/tilemap"
)

// Player is the runner controlled by the user.
type Player struct {
	Rect     core.RectF
	DY       float64 // vertical velocity, px/s, positive is down
	Resting  bool    // standing on a blocker's top edge
	Facing   int     // 1 right, -1 left
	Cooldown float64 // seconds until the gun can fire again
	Dead     bool
}

func (g *Game) updatePlayer(in core.InputFrame, dt float64) {
	p := &g.player
	last := p.Rect
	run := g.cfg.Player.RunSpeed * dt

	if in.Has(core.ActionLeft) {
		p.Facing = -1
		p.Rect.X -= run
	}
	if in.Has(core.ActionRight) {
		p.Facing = 1
		p.Rect.X += run
	}

	if in.Has(core.ActionShoot) && p.Cooldown == 0 {
		g.bullets = append(g.bullets, g.newBullet(p.Rect, p.Facing))
		p.Cooldown = g.cfg.Player.GunCooldown
		g.emit(core.EventShoot)
	}
	p.Cooldown = math.Max(0, p.Cooldown-dt)

	if p.Resting && in.Has(core.ActionJump) {
		p.DY = g.cfg.Physics.JumpVelocity
		g.emit(core.EventJump)
	}
	p.DY = math.Min(g.cfg.Physics.MaxFallSpeed, p.DY+g.cfg.Physics.Gravity*dt)
	p.Rect.Y += p.DY * dt

	wasResting := p.Resting
	p.Resting = false
	p.resolve(last, g.level.Map.Triggers.Collide(p.Rect, tilemap.PropBlockers), func() {
		if !wasResting {
			g.emit(core.EventLand)
		}
	})

	if p.Rect.Top() > g.level.Map.PixelHeight() {
		g.killPlayer(core.OutcomeFell, core.EventPlayerFell)
	}
}

// resolve pushes the player out of blocking cells. A side only blocks when
// the player crossed that edge during this tick, which lets one-way
// platforms (blockers "t") be jumped through from below. Side edges count
// only for cells the player already overlapped vertically, and top/bottom
// edges only for cells it already overlapped horizontally, so the floor
// under a running player never acts as a wall. A cell entered diagonally
// resolves vertically.
func (p *Player) resolve(last core.RectF, cells []tilemap.Cell, landed func()) {
	for _, c := range cells {
		r := &p.Rect
		if !c.Rect().Intersects(*r) {
			continue
		}
		horiz := last.Right() > c.Left && last.Left() < c.Right()
		vert := last.Bottom() > c.Top && last.Top() < c.Bottom()
		if !horiz && !vert {
			horiz = true
		}

		if vert {
			if c.Blocks('l') && r.Right() > c.Left && last.Right() <= c.Left {
				r.SetRight(c.Left)
			}
			if c.Blocks('r') && r.Left() < c.Right() && last.Left() >= c.Right() {
				r.SetLeft(c.Right())
			}
		}
		if horiz {
			if c.Blocks('t') && r.Bottom() > c.Top && last.Bottom() <= c.Top {
				r.SetBottom(c.Top)
				if !p.Resting {
					landed()
				}
				p.Resting = true
				p.DY = 0
			}
			if c.Blocks('b') && r.Top() < c.Bottom() && last.Top() >= c.Bottom() {
				r.SetTop(c.Bottom())
				p.DY = 0
			}
		}
	}
}
