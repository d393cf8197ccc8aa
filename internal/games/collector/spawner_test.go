package collector

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tower/internal/config"
	"github.com/vovakirdan/tui-tower/internal/core"
)

func testSpawner(capacity int) *Spawner {
	cfg := config.DefaultCollectorConfig().Pickups
	cfg.Cap = capacity
	return NewSpawner(cfg, 80, 23, rand.New(rand.NewSource(1)))
}

func TestSpawnerBonusEveryFifthAttempt(t *testing.T) {
	s := testSpawner(10)

	for i := 0; i < 5; i++ {
		s.SpawnRegular()
	}

	a := s.Arena()
	if got := a.Count(KindRegular); got != 5 {
		t.Errorf("regular = %d, expected 5", got)
	}
	if got := a.Count(KindBonus); got != 1 {
		t.Errorf("bonus = %d, expected exactly 1", got)
	}
	if got := a.Count(KindPenalty); got != 0 {
		t.Errorf("penalty = %d, expected 0", got)
	}
	if bonus, penalty := s.Counters(); bonus != 0 || penalty != 5 {
		t.Errorf("Counters() = (%d, %d), expected (0, 5)", bonus, penalty)
	}

	s.SpawnRegular()
	if got := a.Count(KindPenalty); got != 1 {
		t.Errorf("penalty after 6 attempts = %d, expected 1", got)
	}
	if got := a.Count(KindBonus); got != 1 {
		t.Errorf("bonus after 6 attempts = %d, expected 1", got)
	}
	if bonus, penalty := s.Counters(); bonus != 1 || penalty != 0 {
		t.Errorf("Counters() = (%d, %d), expected (1, 0)", bonus, penalty)
	}
}

func TestSpawnerRespectsCap(t *testing.T) {
	s := testSpawner(5)

	for i := 0; i < 5; i++ {
		s.SpawnRegular()
	}
	a := s.Arena()
	if a.Len() != 5 || a.Count(KindBonus) != 0 {
		t.Errorf("full arena: Len() = %d, bonus = %d; expected 5 regulars and no bonus", a.Len(), a.Count(KindBonus))
	}
	if bonus, _ := s.Counters(); bonus != 0 {
		t.Errorf("bonus counter = %d, expected reset to 0 even when blocked", bonus)
	}

	for i := 0; i < 100; i++ {
		s.SpawnRegular()
		if a.Len() > 5 {
			t.Fatalf("population %d exceeds cap 5", a.Len())
		}
	}
}

func TestSpawnerPickupsInsideField(t *testing.T) {
	s := testSpawner(10)
	for i := 0; i < 50; i++ {
		s.Arena().Reset()
		s.SpawnRegular()
		s.Arena().Each(func(_ int, p *Pickup) {
			if p.X < 1 || p.X > 79 {
				t.Fatalf("X = %v outside [1, 79]", p.X)
			}
			if p.Y != 0 {
				t.Fatalf("Y = %v, expected 0", p.Y)
			}
			if p.Speed < 6 || p.Speed > 12 {
				t.Fatalf("Speed = %v outside [6, 12]", p.Speed)
			}
		})
	}
}

func TestSpawnerCullReplacesSameKind(t *testing.T) {
	s := testSpawner(10)
	a := s.Arena()
	a.Spawn(Pickup{Kind: KindPenalty, X: 10, Y: 30})
	a.Spawn(Pickup{Kind: KindRegular, X: 20, Y: 5})

	if n := s.Cull(); n != 1 {
		t.Fatalf("Cull() = %d, expected 1", n)
	}
	if a.Len() != 2 {
		t.Errorf("Len() = %d, expected 2 after replacement", a.Len())
	}
	if a.Count(KindPenalty) != 1 {
		t.Error("culled penalty should be replaced by a penalty")
	}
	a.Each(func(_ int, p *Pickup) {
		if p.Kind == KindPenalty && p.Y != 0 {
			t.Errorf("replacement Y = %v, expected 0", p.Y)
		}
	})
	if bonus, penalty := s.Counters(); bonus != 0 || penalty != 0 {
		t.Error("replacements should not count as spawn attempts")
	}
}

func TestSpawnerTarget(t *testing.T) {
	s := testSpawner(5)
	minute := time.Minute

	tests := []struct {
		elapsed  time.Duration
		expected int
	}{
		{0, 1},
		{15 * time.Second, 2},
		{30 * time.Second, 3},
		{59 * time.Second, 4},
		{minute, 5},
		{2 * minute, 5},
	}
	for _, tc := range tests {
		if got := s.Target(tc.elapsed, minute); got != tc.expected {
			t.Errorf("Target(%v) = %d, expected %d", tc.elapsed, got, tc.expected)
		}
	}

	s.TopUp(30*time.Second, minute)
	if s.Arena().Len() != 3 || s.Arena().Count(KindRegular) != 3 {
		t.Errorf("TopUp at 30s: Len() = %d, regular = %d; expected 3 regulars",
			s.Arena().Len(), s.Arena().Count(KindRegular))
	}
}

func TestSpawnerCatch(t *testing.T) {
	s := testSpawner(10)
	a := s.Arena()
	a.Spawn(Pickup{Kind: KindBonus, X: 40, Y: 21.5})
	a.Spawn(Pickup{Kind: KindRegular, X: 10, Y: 21.5})
	a.Spawn(Pickup{Kind: KindRegular, X: 40, Y: 5})

	paddle := core.NewSpan(40, 8)
	caught := s.Catch(paddle, 22)

	if len(caught) != 1 || caught[0].Kind != KindBonus {
		t.Fatalf("Catch() = %+v, expected the bonus pickup only", caught)
	}
	if a.Len() != 3 || a.Count(KindBonus) != 1 {
		t.Errorf("caught bonus should be replaced: Len() = %d, bonus = %d", a.Len(), a.Count(KindBonus))
	}
}

func TestSpawnerPoints(t *testing.T) {
	s := testSpawner(5)
	tests := map[Kind]int{KindRegular: 1, KindBonus: 3, KindPenalty: -1}
	for k, want := range tests {
		if got := s.Points(k); got != want {
			t.Errorf("Points(%v) = %d, expected %d", k, got, want)
		}
	}
}

func TestSpawnerCatchFastFall(t *testing.T) {
	tests := []struct {
		name   string
		y      float64
		speed  float64
		caught bool
	}{
		{"jumps over the row", 19.5, 120, true}, // 19.5 -> 23.5 in one 30fps tick
		{"slow and above", 19.5, 6, false},
		{"already below", 23.5, 6, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := testSpawner(10)
			s.Arena().Spawn(Pickup{Kind: KindRegular, X: 40, Y: tc.y, Speed: tc.speed})
			s.Fall(time.Second / 30)

			caught := s.Catch(core.NewSpan(40, 8), 22)
			if got := len(caught) == 1; got != tc.caught {
				t.Errorf("caught = %v, expected %v", got, tc.caught)
			}
		})
	}
}
