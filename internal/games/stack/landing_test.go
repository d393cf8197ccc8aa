package stack

import (
	"testing"

	"github.com/vovakirdan/tui-tower/internal/core"
)

func TestEvaluate(t *testing.T) {
	top := Block{CenterX: 200, Width: 400}

	tests := []struct {
		name        string
		active      core.Span
		outcome     Outcome
		width       float64
		center      float64
		hasFragment bool
		fragWidth   float64
		fragCenter  float64
	}{
		{
			name:    "perfect alignment",
			active:  core.NewSpan(200, 400),
			outcome: OutcomeCommitted,
			width:   400,
			center:  200,
		},
		{
			name:        "overhang on the right",
			active:      core.NewSpan(350, 400),
			outcome:     OutcomeCommitted,
			width:       250,
			center:      275,
			hasFragment: true,
			fragWidth:   150,
			fragCenter:  475,
		},
		{
			name:        "overhang on the left",
			active:      core.NewSpan(100, 400),
			outcome:     OutcomeCommitted,
			width:       300,
			center:      150,
			hasFragment: true,
			fragWidth:   100,
			fragCenter:  -50,
		},
		{
			name:    "narrow block fully supported",
			active:  core.NewSpan(120, 50),
			outcome: OutcomeCommitted,
			width:   50,
			center:  120,
		},
		{
			name:    "entirely outside",
			active:  core.NewSpan(900, 400),
			outcome: OutcomeMissed,
		},
		{
			name:    "touching edge",
			active:  core.NewSpan(600, 400),
			outcome: OutcomeMissed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := Evaluate(tc.active, top, 3)

			if l.Outcome != tc.outcome {
				t.Fatalf("Outcome = %v, expected %v", l.Outcome, tc.outcome)
			}
			if tc.outcome == OutcomeMissed {
				if l.Block != (Block{}) || l.Fragment != nil {
					t.Errorf("miss should carry no block or fragment, got %+v / %+v", l.Block, l.Fragment)
				}
				return
			}

			if l.Block.Width != tc.width || l.Block.CenterX != tc.center {
				t.Errorf("Block = {x:%v w:%v}, expected {x:%v w:%v}", l.Block.CenterX, l.Block.Width, tc.center, tc.width)
			}
			if l.Block.ColorIndex != 3 {
				t.Errorf("Block.ColorIndex = %d, expected 3", l.Block.ColorIndex)
			}

			if (l.Fragment != nil) != tc.hasFragment {
				t.Fatalf("fragment present = %v, expected %v", l.Fragment != nil, tc.hasFragment)
			}
			if tc.hasFragment {
				if l.Fragment.Width != tc.fragWidth || l.Fragment.CenterX != tc.fragCenter {
					t.Errorf("Fragment = {x:%v w:%v}, expected {x:%v w:%v}",
						l.Fragment.CenterX, l.Fragment.Width, tc.fragCenter, tc.fragWidth)
				}
				// Committed block and fragment together make up the falling block
				if l.Fragment.Width+l.Block.Width != tc.active.Width {
					t.Errorf("fragment + block = %v, expected %v", l.Fragment.Width+l.Block.Width, tc.active.Width)
				}
			}
		})
	}
}

func TestEvaluateCommittedBlockNeverWidens(t *testing.T) {
	top := Block{CenterX: 40, Width: 30}
	for x := 0.0; x <= 80; x += 0.25 {
		for _, w := range []float64{5, 30, 40} {
			active := core.NewSpan(x, w)
			l := Evaluate(active, top, 0)
			if l.Outcome == OutcomeMissed {
				continue
			}
			if l.Block.Width > w || l.Block.Width > top.Width {
				t.Fatalf("x=%v w=%v: committed width %v exceeds min(%v, %v)", x, w, l.Block.Width, w, top.Width)
			}
			if l.Block.Left() < top.Left() || l.Block.Right() > top.Right() {
				t.Fatalf("x=%v w=%v: committed block [%v, %v] not supported by top [%v, %v]",
					x, w, l.Block.Left(), l.Block.Right(), top.Left(), top.Right())
			}
		}
	}
}
