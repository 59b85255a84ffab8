package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PlatformerPhysics{
			Gravity:      1200,
			JumpVelocity: -500,
			MaxFallSpeed: 700,
		},
		Player: PlatformerPlayer{
			RunSpeed:    300,
			Width:       24,
			Height:      32,
			GunCooldown: 0.2,
		},
		Enemy: PlatformerEnemy{
			Speed:  100,
			Width:  32,
			Height: 32,
		},
		Bullet: PlatformerBullet{
			Speed:    400,
			Lifespan: 1,
			Width:    8,
			Height:   4,
		},
		Camera: PlatformerCamera{
			Smoothing:    6,
			ReferenceFPS: 30,
		},
		Scoring: PlatformerScoring{
			KillPoints: 100,
			ClearBonus: 500,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 5400, // 3 minutes at 30fps
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "platformer":
		return defaultPlatformerYAML
	default:
		return nil
	}
}
