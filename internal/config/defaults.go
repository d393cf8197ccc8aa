package config

import (
	_ "embed"
)

//go:embed defaults/stack.yaml
var defaultStackYAML []byte

//go:embed defaults/stack_camera.yaml
var defaultStackCameraYAML []byte

//go:embed defaults/collector.yaml
var defaultCollectorYAML []byte

// DefaultStackConfig returns the default fixed-camera stacking configuration.
func DefaultStackConfig() StackConfig {
	return StackConfig{
		Board: StackBoard{
			BlockHeight:    1,
			BaseWidth:      40,
			BaseWidthRatio: 0.8,
			SpawnGap:       10,
			HUDRows:        1,
			Camera:         false,
		},
		Motion: StackMotion{
			BaseSpeed:          12,
			WidthScaling:       false,
			MaxWidthMultiplier: 3,
		},
		Descent: StackDescent{
			SlowSeconds: 8,
			FastSeconds: 0.3,
			FastEase:    "out_quad",
		},
		Fragments: StackFragments{
			FallSpeed:       10,
			DriftSpeed:      3,
			LifetimeSeconds: 3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				Every: 5,
			},
			Scaling: ScalingConfig{
				SpeedStep:     0.25, // 200 -> +50 every 5 blocks
				MaxMultiplier: 4.0,
			},
		},
	}
}

// DefaultStackCameraConfig returns the default camera-following configuration.
func DefaultStackCameraConfig() StackConfig {
	cfg := DefaultStackConfig()
	cfg.Board.SpawnGap = 8
	cfg.Board.Camera = true
	cfg.Motion.BaseSpeed = 10
	cfg.Motion.WidthScaling = true
	cfg.Descent.SlowSeconds = 6
	cfg.Descent.FastSeconds = 0.25
	cfg.Descent.FastEase = "out_cubic"
	cfg.Fragments.FallSpeed = 12
	return cfg
}

// DefaultCollectorConfig returns the default collector configuration.
func DefaultCollectorConfig() CollectorConfig {
	return CollectorConfig{
		Pickups: CollectorPickups{
			Cap:          5,
			Width:        2,
			MinSpeed:     6,
			MaxSpeed:     12,
			BonusEvery:   5,
			PenaltyEvery: 6,
			RegularPts:   1,
			BonusPts:     3,
			PenaltyPts:   -1,
		},
		Player: CollectorPlayer{
			Width: 8,
			Step:  2,
		},
		Match: CollectorMatch{
			DurationSeconds: 60,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 3600, // one minute at 60fps
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
	case "stack":
		return defaultStackYAML
	case "stack_camera":
		return defaultStackCameraYAML
	case "collector":
		return defaultCollectorYAML
	default:
		return nil
	}
}
