package stack

import (
	"math/rand"
	"time"
)

// Fragment is a sliced-off piece falling away from the tower.
// It is never part of the tower.
type Fragment struct {
	CenterX    float64
	Y          float64 // Centre y
	Width      float64
	VX, VY     float64 // Cells per second
	Age        time.Duration
	ColorIndex int
}

// fragmentField owns the live fragments of a session.
type fragmentField struct {
	items    []Fragment
	rng      *rand.Rand
	fall     float64
	drift    float64
	lifetime time.Duration
}

func newFragmentField(rng *rand.Rand, fall, drift float64, lifetime time.Duration) *fragmentField {
	return &fragmentField{
		items:    make([]Fragment, 0, 4),
		rng:      rng,
		fall:     fall,
		drift:    drift,
		lifetime: lifetime,
	}
}

// Launch gives a fragment its velocity and starts tracking it.
func (f *fragmentField) Launch(fr Fragment) {
	fr.VY = f.fall
	fr.VX = (f.rng.Float64()*2 - 1) * f.drift
	fr.Age = 0
	f.items = append(f.items, fr)
}

// Update moves every fragment and drops the ones that expired or fell
// below bottomY (world y of the visible area's lower edge).
func (f *fragmentField) Update(dt time.Duration, bottomY, blockHeight float64) {
	secs := dt.Seconds()
	alive := f.items[:0]
	for _, fr := range f.items {
		fr.CenterX += fr.VX * secs
		fr.Y += fr.VY * secs
		fr.Age += dt
		if fr.Age >= f.lifetime {
			continue
		}
		if fr.Y-blockHeight/2 > bottomY {
			continue
		}
		alive = append(alive, fr)
	}
	f.items = alive
}

// Reset removes every fragment.
func (f *fragmentField) Reset(rng *rand.Rand) {
	f.items = f.items[:0]
	f.rng = rng
}

// Items returns a copy of the live fragments.
func (f *fragmentField) Items() []Fragment {
	out := make([]Fragment, len(f.items))
	copy(out, f.items)
	return out
}
