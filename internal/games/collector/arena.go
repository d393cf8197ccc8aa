package collector

// Kind identifies a pickup type.
type Kind int

const (
	KindRegular Kind = iota
	KindBonus
	KindPenalty
)

func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindBonus:
		return "bonus"
	case KindPenalty:
		return "penalty"
	default:
		return "unknown"
	}
}

// Pickup is a falling item. X is the centre, Y the top edge.
type Pickup struct {
	Kind  Kind
	X     float64
	Y     float64
	Speed float64 // Cells per second
	Fell  float64 // Distance covered by the last Fall
}

// Arena stores pickups in a fixed number of slots. Freed slots are kept
// on a free list and reused, so the capacity doubles as the population
// cap.
type Arena struct {
	slots []Pickup
	live  []bool
	free  []int
	count int
}

// NewArena creates an arena with room for capacity pickups.
func NewArena(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	a := &Arena{
		slots: make([]Pickup, capacity),
		live:  make([]bool, capacity),
		free:  make([]int, 0, capacity),
	}
	a.Reset()
	return a
}

// Reset frees every slot.
func (a *Arena) Reset() {
	a.free = a.free[:0]
	// Push in reverse so slot 0 is handed out first.
	for i := len(a.slots) - 1; i >= 0; i-- {
		a.live[i] = false
		a.free = append(a.free, i)
	}
	a.count = 0
}

// Spawn stores p in a free slot. It returns false when the arena is full.
func (a *Arena) Spawn(p Pickup) (int, bool) {
	if len(a.free) == 0 {
		return -1, false
	}
	i := a.free[len(a.free)-1]
	a.free = a.free[:len(a.free)-1]
	a.slots[i] = p
	a.live[i] = true
	a.count++
	return i, true
}

// Remove frees slot i. It returns false if the slot was not in use.
func (a *Arena) Remove(i int) bool {
	if i < 0 || i >= len(a.slots) || !a.live[i] {
		return false
	}
	a.live[i] = false
	a.slots[i] = Pickup{}
	a.free = append(a.free, i)
	a.count--
	return true
}

// Get returns the pickup in slot i.
func (a *Arena) Get(i int) (Pickup, bool) {
	if i < 0 || i >= len(a.slots) || !a.live[i] {
		return Pickup{}, false
	}
	return a.slots[i], true
}

// Len returns the number of live pickups.
func (a *Arena) Len() int {
	return a.count
}

// Cap returns the number of slots.
func (a *Arena) Cap() int {
	return len(a.slots)
}

// Full reports whether no slot is free.
func (a *Arena) Full() bool {
	return len(a.free) == 0
}

// Each calls fn for every live pickup in slot order. fn may modify the
// pickup through the pointer but must not spawn or remove.
func (a *Arena) Each(fn func(i int, p *Pickup)) {
	for i := range a.slots {
		if a.live[i] {
			fn(i, &a.slots[i])
		}
	}
}

// Count returns the number of live pickups of kind k.
func (a *Arena) Count(k Kind) int {
	n := 0
	for i := range a.slots {
		if a.live[i] && a.slots[i].Kind == k {
			n++
		}
	}
	return n
}

// Pickups returns a copy of the live pickups in slot order.
func (a *Arena) Pickups() []Pickup {
	out := make([]Pickup, 0, a.count)
	a.Each(func(_ int, p *Pickup) {
		out = append(out, *p)
	})
	return out
}
