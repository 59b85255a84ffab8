package platformer

import "github.com/vovakirdan/tilejump/internal/core"

// Snapshot contains the complete simulation state. The window frontend draws
// from it and tests compare snapshots of runs fed identical inputs.
type Snapshot struct {
	Tick    uint64
	LevelID string

	Player         core.RectF
	PlayerDY       float64
	PlayerResting  bool
	PlayerFacing   int
	PlayerCooldown float64
	PlayerDead     bool

	Enemies []EnemySnapshot
	Bullets []BulletSnapshot

	FocusX, FocusY float64
	View           core.RectF

	Kills   int
	State   core.GameState
	Outcome core.Outcome
}

// EnemySnapshot is the state of one enemy.
type EnemySnapshot struct {
	Rect core.RectF
	Dir  int
}

// BulletSnapshot is the state of one bullet.
type BulletSnapshot struct {
	Rect     core.RectF
	Dir      int
	Lifespan float64
}

// Snapshot returns a copy of the current game state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:           g.tickCount,
		LevelID:        g.level.ID,
		Player:         g.player.Rect,
		PlayerDY:       g.player.DY,
		PlayerResting:  g.player.Resting,
		PlayerFacing:   g.player.Facing,
		PlayerCooldown: g.player.Cooldown,
		PlayerDead:     g.player.Dead,
		Enemies:        make([]EnemySnapshot, len(g.enemies)),
		Bullets:        make([]BulletSnapshot, len(g.bullets)),
		Kills:          g.kills,
		State:          g.State(),
		Outcome:        g.outcome,
	}
	for i, e := range g.enemies {
		s.Enemies[i] = EnemySnapshot{Rect: e.Rect, Dir: e.Dir}
	}
	for i, b := range g.bullets {
		s.Bullets[i] = BulletSnapshot{Rect: b.Rect, Dir: b.Dir, Lifespan: b.Lifespan}
	}
	if g.view != nil {
		s.FocusX, s.FocusY = g.view.FX, g.view.FY
		s.View = g.view.Rect()
	}
	return s
}
