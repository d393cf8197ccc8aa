package stack

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Phase is the descent state of the active block.
type Phase int

const (
	PhaseSpawned    Phase = iota // Created, not yet moving
	PhaseDescending              // Slow automatic glide
	PhaseFastDrop                // Triggered drop-in
	PhaseLanded                  // Reached the tower top
)

func (p Phase) String() string {
	switch p {
	case PhaseSpawned:
		return "spawned"
	case PhaseDescending:
		return "descending"
	case PhaseFastDrop:
		return "fast_drop"
	case PhaseLanded:
		return "landed"
	default:
		return "unknown"
	}
}

// Descent drives the active block's y position toward its landing
// height. Both the glide and the drop-in are tweens advanced by elapsed
// time; arrival is the tween reporting completion.
type Descent struct {
	phase  Phase
	tween  *gween.Tween
	y      float64
	target float64

	slow     time.Duration
	fast     time.Duration
	fastEase ease.TweenFunc
}

// NewDescent creates a descent from startY to targetY.
func NewDescent(startY, targetY float64, slow, fast time.Duration, fastEase ease.TweenFunc) *Descent {
	if fastEase == nil {
		fastEase = ease.OutQuad
	}
	return &Descent{
		phase:    PhaseSpawned,
		y:        startY,
		target:   targetY,
		slow:     slow,
		fast:     fast,
		fastEase: fastEase,
	}
}

// Begin starts the slow linear glide.
func (d *Descent) Begin() {
	if d.phase != PhaseSpawned {
		return
	}
	d.phase = PhaseDescending
	d.tween = gween.New(float32(d.y), float32(d.target), float32(d.slow.Seconds()), ease.Linear)
}

// Trigger replaces the glide with a short drop-in toward the same
// target. It reports whether the trigger took effect; only the first
// trigger per block does.
func (d *Descent) Trigger() bool {
	switch d.phase {
	case PhaseSpawned, PhaseDescending:
		d.phase = PhaseFastDrop
		d.tween = gween.New(float32(d.y), float32(d.target), float32(d.fast.Seconds()), d.fastEase)
		return true
	default:
		return false
	}
}

// Update advances the active tween by dt. It returns the new y and
// whether the block arrived during this call.
func (d *Descent) Update(dt time.Duration) (float64, bool) {
	if d.tween == nil || d.phase == PhaseLanded {
		return d.y, false
	}

	y, done := d.tween.Update(float32(dt.Seconds()))
	if done {
		d.y = d.target
		d.phase = PhaseLanded
		return d.y, true
	}
	d.y = float64(y)
	return d.y, false
}

// Phase returns the current descent phase.
func (d *Descent) Phase() Phase {
	return d.phase
}

// Y returns the block's current centre y.
func (d *Descent) Y() float64 {
	return d.y
}

// Target returns the landing y.
func (d *Descent) Target() float64 {
	return d.target
}

// EaseByName maps a config name to an easing curve. Only curves that
// approach the target monotonically are offered; unknown names fall
// back to out_quad.
func EaseByName(name string) ease.TweenFunc {
	switch name {
	case "linear":
		return ease.Linear
	case "out_quad":
		return ease.OutQuad
	case "out_cubic":
		return ease.OutCubic
	case "out_quart":
		return ease.OutQuart
	case "out_sine":
		return ease.OutSine
	default:
		return ease.OutQuad
	}
}
