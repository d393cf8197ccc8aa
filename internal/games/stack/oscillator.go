package stack

import "math"

// Oscillator bounces the active block between the side walls.
type Oscillator struct {
	CenterX     float64
	MovingRight bool
}

// Advance moves the block by step cells and flips direction once it
// reaches a wall. The wall positions are width/2 and bounds-width/2;
// the block is clamped to the wall it touched.
func (o *Oscillator) Advance(width, bounds, step float64) (float64, bool) {
	lo, hi := width/2, bounds-width/2
	if lo >= hi {
		// Block as wide as the field: nowhere to go.
		o.CenterX = bounds / 2
		return o.CenterX, o.MovingRight
	}

	if o.MovingRight {
		o.CenterX += step
		if o.CenterX >= hi {
			o.CenterX = hi
			o.MovingRight = false
		}
	} else {
		o.CenterX -= step
		if o.CenterX <= lo {
			o.CenterX = lo
			o.MovingRight = true
		}
	}
	return o.CenterX, o.MovingRight
}

// WidthMultiplier returns the speed factor applied when narrow blocks
// move faster: startWidth/width, never below 1 and capped at limit.
func WidthMultiplier(startWidth, width, limit float64) float64 {
	if width <= 0 || startWidth <= 0 {
		return 1
	}
	m := math.Max(1, startWidth/width)
	if limit > 0 {
		m = math.Min(m, limit)
	}
	return m
}
