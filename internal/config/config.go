// Package config provides YAML-based game configuration loading and
// difficulty management for the platformer.
package config

// PlatformerConfig contains all tunable parameters of the platformer.
type PlatformerConfig struct {
	Physics    PlatformerPhysics `yaml:"physics"`
	Player     PlatformerPlayer  `yaml:"player"`
	Enemy      PlatformerEnemy   `yaml:"enemy"`
	Bullet     PlatformerBullet  `yaml:"bullet"`
	Camera     PlatformerCamera  `yaml:"camera"`
	Scoring    PlatformerScoring `yaml:"scoring"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// PlatformerPhysics defines vertical motion. Units are pixels and seconds.
type PlatformerPhysics struct {
	Gravity      float64 `yaml:"gravity"`        // px/s²
	JumpVelocity float64 `yaml:"jump_velocity"`  // px/s, negative is up
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // px/s
}

// PlatformerPlayer defines the player body and gun.
type PlatformerPlayer struct {
	RunSpeed    float64 `yaml:"run_speed"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	GunCooldown float64 `yaml:"gun_cooldown"` // seconds between shots
}

// PlatformerEnemy defines patrolling enemies.
type PlatformerEnemy struct {
	Speed  float64 `yaml:"speed"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlatformerBullet defines player bullets.
type PlatformerBullet struct {
	Speed    float64 `yaml:"speed"`
	Lifespan float64 `yaml:"lifespan"` // seconds
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
}

// PlatformerCamera defines how the viewport follows the player.
type PlatformerCamera struct {
	Smoothing    float64 `yaml:"smoothing"`     // focus closes 1/smoothing of the gap per reference frame
	ReferenceFPS float64 `yaml:"reference_fps"` // frame rate the smoothing factor is tuned for
}

// PlatformerScoring defines points awarded during a run.
type PlatformerScoring struct {
	KillPoints int `yaml:"kill_points"`
	ClearBonus int `yaml:"clear_bonus"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to enemy speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Unknown names report false.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	case "":
		return DifficultyNormal, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
