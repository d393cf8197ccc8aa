// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// StackConfig contains all configuration for the tower stacking games.
type StackConfig struct {
	Board      StackBoard       `yaml:"board"`
	Motion     StackMotion      `yaml:"motion"`
	Descent    StackDescent     `yaml:"descent"`
	Fragments  StackFragments   `yaml:"fragments"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// StackBoard defines the playfield geometry. Units are screen cells.
type StackBoard struct {
	BlockHeight    float64 `yaml:"block_height"`
	BaseWidth      float64 `yaml:"base_width"`       // Upper bound for the starting width
	BaseWidthRatio float64 `yaml:"base_width_ratio"` // Starting width as a fraction of the viewport
	SpawnGap       float64 `yaml:"spawn_gap"`        // Distance from the tower top to a new block's centre
	HUDRows        int     `yaml:"hud_rows"`         // Rows reserved above the playfield
	Camera         bool    `yaml:"camera"`           // Follow the tower once it passes mid-screen
}

// StackMotion defines horizontal oscillation parameters.
type StackMotion struct {
	BaseSpeed          float64 `yaml:"base_speed"`           // Cells per second
	WidthScaling       bool    `yaml:"width_scaling"`        // Narrower blocks move faster
	MaxWidthMultiplier float64 `yaml:"max_width_multiplier"` // Cap for width scaling
}

// StackDescent defines how blocks fall onto the tower.
type StackDescent struct {
	SlowSeconds float64 `yaml:"slow_seconds"` // Automatic glide duration
	FastSeconds float64 `yaml:"fast_seconds"` // Triggered drop-in duration
	FastEase    string  `yaml:"fast_ease"`    // Easing curve name for the drop-in
}

// StackFragments defines the behaviour of sliced-off pieces.
type StackFragments struct {
	FallSpeed       float64 `yaml:"fall_speed"`       // Cells per second, downward
	DriftSpeed      float64 `yaml:"drift_speed"`      // Max horizontal speed in either direction
	LifetimeSeconds float64 `yaml:"lifetime_seconds"` // Fragments vanish after this long
}

// CollectorConfig contains all configuration for the collector mini-game.
type CollectorConfig struct {
	Pickups    CollectorPickups `yaml:"pickups"`
	Player     CollectorPlayer  `yaml:"player"`
	Match      CollectorMatch   `yaml:"match"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CollectorPickups defines the falling pickup population.
type CollectorPickups struct {
	Cap          int     `yaml:"cap"` // Shared cap across all kinds
	Width        float64 `yaml:"width"`
	MinSpeed     float64 `yaml:"min_speed"` // Cells per second
	MaxSpeed     float64 `yaml:"max_speed"`
	BonusEvery   int     `yaml:"bonus_every"`   // Every Nth regular spawn adds a bonus
	PenaltyEvery int     `yaml:"penalty_every"` // Every Nth regular spawn adds a penalty
	RegularPts   int     `yaml:"regular_points"`
	BonusPts     int     `yaml:"bonus_points"`
	PenaltyPts   int     `yaml:"penalty_points"`
}

// CollectorPlayer defines the catcher paddle.
type CollectorPlayer struct {
	Width float64 `yaml:"width"`
	Step  float64 `yaml:"step"` // Cells moved per Left/Right input
}

// CollectorMatch defines the match timer.
type CollectorMatch struct {
	DurationSeconds float64 `yaml:"duration_seconds"`
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
	Every int    `yaml:"every"`  // Score interval between speed steps
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
	SpeedStep       float64 `yaml:"speed_step"`       // Fraction of base speed added per step
	MaxMultiplier   float64 `yaml:"max_multiplier"`   // Upper bound on speed relative to base
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
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
