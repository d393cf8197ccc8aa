package config

import "math"

// DifficultyManager turns score or elapsed ticks into speeds. It holds
// no progress of its own; every result is a pure function of its
// arguments.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled reports whether the level moves at all.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// progress is how far score or ticks have come towards MaxAt, in [0, 1].
// ok is false for an unknown progression type.
func (d *DifficultyManager) progress(score, ticks int) (p float64, ok bool) {
	maxAt := math.Max(float64(d.cfg.Progression.MaxAt), 1)
	switch d.cfg.Progression.Type {
	case "score":
		p = float64(score) / maxAt
	case "time":
		p = float64(ticks) / maxAt
	default:
		return 0, false
	}
	return clampF(p, 0, 1), true
}

// Level interpolates from the initial level up to 1.0 as progress is
// made. Disabled progression pins it at the initial level.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}
	p, ok := d.progress(score, ticks)
	if !ok {
		return d.initialLevel
	}
	return d.initialLevel + p*(1-d.initialLevel)
}

// Speed returns a continuously scaled speed for the current level.
func (d *DifficultyManager) Speed(baseSpeed float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// Steps returns how many speed steps a score has earned.
// With Every = 5, scores 5, 10, 15... each add one step.
func (d *DifficultyManager) Steps(score int) int {
	if !d.IsEnabled() || d.cfg.Progression.Every <= 0 || score <= 0 {
		return 0
	}
	return score / d.cfg.Progression.Every
}

// StepSpeed returns a speed that grows in discrete steps with score.
// The initial level scales the starting speed; the result is capped at
// MaxMultiplier times the base.
func (d *DifficultyManager) StepSpeed(baseSpeed float64, score int) float64 {
	speed := baseSpeed*(1.0+d.initialLevel) + baseSpeed*d.cfg.Scaling.SpeedStep*float64(d.Steps(score))
	if limit := d.cfg.Scaling.MaxMultiplier; limit > 0 {
		speed = math.Min(speed, baseSpeed*limit)
	}
	return speed
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
