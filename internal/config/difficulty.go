package config

import "math"

// Progression types accepted in difficulty.progression.type.
const (
	ProgressScore = "score"
	ProgressTime  = "time"
	ProgressNone  = "none"
)

// DifficultyManager ramps the enemy pace up during a run.
type DifficultyManager struct {
	cfg   DifficultyConfig
	start float64
}

// NewDifficultyManager creates a manager starting at cfg.InitialLevel.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, start: unit(cfg.InitialLevel)}
}

// SetEnabled turns progression on or off. A disabled manager stays at the
// initial level.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled reports whether the level changes during a run.
func (d *DifficultyManager) IsEnabled() bool {
	if !d.cfg.Enabled {
		return false
	}
	switch d.cfg.Progression.Type {
	case ProgressScore, ProgressTime:
		return true
	}
	return false
}

// Level maps run progress onto [initial level, 1]. Score progression reaches
// the top at max_at points, time progression at max_at ticks.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.start
	}
	done := ticks
	if d.cfg.Progression.Type == ProgressScore {
		done = score
	}
	frac := unit(float64(done) / float64(max(d.cfg.Progression.MaxAt, 1)))
	return d.start + frac*(1-d.start)
}

// Speed scales an enemy's base speed. At level 1 it is
// base * (1 + speed_multiplier).
func (d *DifficultyManager) Speed(base float64, score, ticks int) float64 {
	return base * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

func unit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
