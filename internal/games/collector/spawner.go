package collector

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tower/internal/config"
	"github.com/vovakirdan/tui-tower/internal/core"
)

// Spawner keeps the pickup population topped up and retires pickups
// that fall out of view or get caught.
type Spawner struct {
	arena  *Arena
	rng    *rand.Rand
	cfg    config.CollectorPickups
	fieldW float64
	fieldH float64

	// Counted per top-level regular spawn attempt; replacements do not count.
	bonusCounter   int
	penaltyCounter int

	speedScale float64
}

// NewSpawner creates a spawner for a field of the given size.
func NewSpawner(cfg config.CollectorPickups, fieldW, fieldH float64, rng *rand.Rand) *Spawner {
	return &Spawner{
		arena:      NewArena(cfg.Cap),
		rng:        rng,
		cfg:        cfg,
		fieldW:     fieldW,
		fieldH:     fieldH,
		speedScale: 1,
	}
}

// Arena returns the backing arena.
func (s *Spawner) Arena() *Arena {
	return s.arena
}

// Counters returns the bonus and penalty spawn counters.
func (s *Spawner) Counters() (bonus, penalty int) {
	return s.bonusCounter, s.penaltyCounter
}

// SetSpeedScale multiplies the fall speed of pickups spawned from now on.
func (s *Spawner) SetSpeedScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	s.speedScale = scale
}

// SpawnRegular is a top-level spawn attempt. It adds a regular pickup if
// there is room, and every BonusEvery / PenaltyEvery attempts also tries
// to add a bonus / penalty pickup. A counter resets when it fires.
func (s *Spawner) SpawnRegular() {
	s.spawn(KindRegular)

	s.bonusCounter++
	if s.cfg.BonusEvery > 0 && s.bonusCounter >= s.cfg.BonusEvery {
		s.bonusCounter = 0
		s.spawn(KindBonus)
	}

	s.penaltyCounter++
	if s.cfg.PenaltyEvery > 0 && s.penaltyCounter >= s.cfg.PenaltyEvery {
		s.penaltyCounter = 0
		s.spawn(KindPenalty)
	}
}

// spawn places a pickup of kind k at a random x on the top row.
func (s *Spawner) spawn(k Kind) bool {
	if s.arena.Full() {
		return false
	}
	half := s.cfg.Width / 2
	x := half
	if span := s.fieldW - s.cfg.Width; span > 0 {
		x += s.rng.Float64() * span
	}
	speed := s.cfg.MinSpeed
	if d := s.cfg.MaxSpeed - s.cfg.MinSpeed; d > 0 {
		speed += s.rng.Float64() * d
	}
	_, ok := s.arena.Spawn(Pickup{Kind: k, X: x, Y: 0, Speed: speed * s.speedScale})
	return ok
}

// Target returns how many pickups should be alive after elapsed time:
// one at the start, ramping to the cap over the match duration.
func (s *Spawner) Target(elapsed, duration time.Duration) int {
	limit := s.arena.Cap()
	if limit == 0 {
		return 0
	}
	if duration <= 0 || elapsed >= duration {
		return limit
	}
	frac := float64(elapsed) / float64(duration)
	return core.Min(limit, 1+int(math.Floor(float64(limit-1)*frac)))
}

// TopUp issues regular spawn attempts until the population reaches the
// time-based target.
func (s *Spawner) TopUp(elapsed, duration time.Duration) {
	target := s.Target(elapsed, duration)
	for s.arena.Len() < target {
		s.SpawnRegular()
	}
}

// Fall moves every pickup down by its speed.
func (s *Spawner) Fall(dt time.Duration) {
	secs := dt.Seconds()
	s.arena.Each(func(_ int, p *Pickup) {
		p.Fell = p.Speed * secs
		p.Y += p.Fell
	})
}

// Cull removes pickups below the field and replaces each with one of
// the same kind while there is room.
func (s *Spawner) Cull() int {
	var gone []int
	var kinds []Kind
	s.arena.Each(func(i int, p *Pickup) {
		if p.Y > s.fieldH {
			gone = append(gone, i)
			kinds = append(kinds, p.Kind)
		}
	})
	for n, i := range gone {
		s.arena.Remove(i)
		s.spawn(kinds[n])
	}
	return len(gone)
}

// Catch removes every pickup that touched the paddle during its last
// fall, and replaces each with one of the same kind while there is room.
// The paddle occupies one row starting at rowY. It returns the caught
// pickups in slot order.
func (s *Spawner) Catch(paddle core.Span, rowY float64) []Pickup {
	var caught []Pickup
	var slots []int
	s.arena.Each(func(i int, p *Pickup) {
		if p.Y-p.Fell >= rowY+1 || p.Y+1 <= rowY {
			return
		}
		if core.Overlap(core.NewSpan(p.X, s.cfg.Width), paddle).Hit() {
			caught = append(caught, *p)
			slots = append(slots, i)
		}
	})
	for n, i := range slots {
		s.arena.Remove(i)
		s.spawn(caught[n].Kind)
	}
	return caught
}

// Points returns the score change for catching a pickup of kind k.
func (s *Spawner) Points(k Kind) int {
	switch k {
	case KindBonus:
		return s.cfg.BonusPts
	case KindPenalty:
		return s.cfg.PenaltyPts
	default:
		return s.cfg.RegularPts
	}
}

// Reset clears the field and both counters.
func (s *Spawner) Reset(rng *rand.Rand) {
	s.arena.Reset()
	s.rng = rng
	s.bonusCounter = 0
	s.penaltyCounter = 0
	s.speedScale = 1
}
