package core

import "testing"

func TestActionNames(t *testing.T) {
	for a := ActionNone; a < actionCount; a++ {
		name := a.String()
		if name == "Unknown" {
			t.Errorf("action %d has no name", a)
			continue
		}
		got, ok := ParseAction(name)
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = (%v, %v), expected (%v, true)", name, got, ok, a)
		}
	}

	if _, ok := ParseAction("Jump"); ok {
		t.Error("ParseAction should reject unknown names")
	}
	if got := Action(99).String(); got != "Unknown" {
		t.Errorf("Action(99).String() = %q", got)
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame // zero value must be usable
	if !f.Empty() || f.Has(ActionDrop) {
		t.Error("zero frame should be empty")
	}

	f.Set(ActionPause)
	f.Set(ActionDrop)
	if f.Empty() || !f.Has(ActionDrop) || !f.Has(ActionPause) {
		t.Error("Set actions should be reported")
	}

	list := f.List()
	if len(list) != 2 || list[0] != ActionDrop || list[1] != ActionPause {
		t.Errorf("List() = %v, expected [Drop Pause]", list)
	}

	f.Clear()
	if !f.Empty() || len(f.List()) != 0 {
		t.Error("Clear should empty the frame")
	}
}

func TestTickDuration(t *testing.T) {
	tests := []struct {
		rate     int
		expected int64 // nanoseconds
	}{
		{60, 16666666},
		{30, 33333333},
		{0, 16666666},
		{-5, 16666666},
	}
	for _, tc := range tests {
		cfg := RuntimeConfig{TickRate: tc.rate}
		if got := cfg.TickDuration().Nanoseconds(); got != tc.expected {
			t.Errorf("TickDuration() at %d = %d, expected %d", tc.rate, got, tc.expected)
		}
	}
}
