package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg PlatformerConfig
	if err := yaml.Unmarshal(GetDefaultYAML("platformer"), &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if cfg != DefaultPlatformerConfig() {
		t.Errorf("embedded defaults differ from DefaultPlatformerConfig:\n%+v\n%+v", cfg, DefaultPlatformerConfig())
	}
	if GetDefaultYAML("pong") != nil {
		t.Error("unknown game should have no default yaml")
	}
}

func TestLoadPlatformerCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "physics:\n  gravity: 900\nscoring:\n  kill_points: 50\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPlatformer(path)
	if err != nil {
		t.Fatalf("LoadPlatformer: %v", err)
	}
	if cfg.Physics.Gravity != 900 {
		t.Errorf("gravity = %v, want 900", cfg.Physics.Gravity)
	}
	if cfg.Scoring.KillPoints != 50 {
		t.Errorf("kill_points = %d, want 50", cfg.Scoring.KillPoints)
	}
	// Keys the file does not set keep their defaults
	if cfg.Player.RunSpeed != 300 {
		t.Errorf("run_speed = %v, want default 300", cfg.Player.RunSpeed)
	}
}

func TestLoadPlatformerErrors(t *testing.T) {
	if _, err := LoadPlatformer(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPlatformer(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestApplyPlatformerPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		enabled     bool
		initial     float64
		enemySpeed  float64
		gunCooldown float64
	}{
		{DifficultyEasy, true, 0.0, 75, 0.15},
		{DifficultyNormal, true, 0.3, 100, 0.2},
		{DifficultyHard, true, 0.7, 125, 0.3},
		{DifficultyFixed, false, 0.0, 100, 0.2},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultPlatformerConfig()
			ApplyPlatformerPreset(&cfg, tt.preset)

			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if !almostEqual(cfg.Difficulty.InitialLevel, tt.initial) {
				t.Errorf("initial level = %v, want %v", cfg.Difficulty.InitialLevel, tt.initial)
			}
			if !almostEqual(cfg.Enemy.Speed, tt.enemySpeed) {
				t.Errorf("enemy speed = %v, want %v", cfg.Enemy.Speed, tt.enemySpeed)
			}
			if !almostEqual(cfg.Player.GunCooldown, tt.gunCooldown) {
				t.Errorf("gun cooldown = %v, want %v", cfg.Player.GunCooldown, tt.gunCooldown)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("empty preset = %q, %v; want normal", p, ok)
	}
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("hard preset = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("insane"); ok {
		t.Error("unknown preset should not parse")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	}
	dm := NewDifficultyManager(cfg)

	if got := dm.Level(0, 0); !almostEqual(got, 0.2) {
		t.Errorf("Level at start = %v, want 0.2", got)
	}
	if got := dm.Level(0, 50); !almostEqual(got, 0.6) {
		t.Errorf("Level halfway = %v, want 0.6", got)
	}
	if got := dm.Level(0, 1000); !almostEqual(got, 1.0) {
		t.Errorf("Level past max = %v, want 1.0", got)
	}
	if got := dm.Speed(100, 0, 1000); !almostEqual(got, 200) {
		t.Errorf("Speed at max = %v, want 200", got)
	}

	dm.SetEnabled(false)
	if dm.IsEnabled() {
		t.Error("manager should be disabled")
	}
	if got := dm.Speed(100, 0, 1000); !almostEqual(got, 120) {
		t.Errorf("Speed when disabled = %v, want 120", got)
	}
	dm.SetEnabled(true)
	if got := dm.Level(0, 50); !almostEqual(got, 0.6) {
		t.Errorf("Level after re-enabling = %v, want 0.6", got)
	}

	score := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 0},
	})
	if got := score.Level(5, 0); !almostEqual(got, 1.0) {
		t.Errorf("score progression with max_at 0 = %v, want 1.0", got)
	}
}
