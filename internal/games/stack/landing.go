package stack

import "github.com/vovakirdan/tui-tower/internal/core"

// Outcome is the result of a block reaching the tower top.
type Outcome int

const (
	OutcomeCommitted Outcome = iota // Overlapped the top block; a new block is committed
	OutcomeMissed                   // No overlap; the match ends
)

func (o Outcome) String() string {
	if o == OutcomeCommitted {
		return "committed"
	}
	return "missed"
}

// Landing describes how a falling block met the tower.
type Landing struct {
	Outcome   Outcome
	Alignment core.Alignment
	Block     Block     // Block to commit, zero on a miss
	Fragment  *Fragment // Sliced-off remainder, nil when nothing was cut
}

// Evaluate compares the falling block against the top of the tower.
// It does not mutate anything; the session applies the result.
//
// On a hit the committed block spans the shared interval. If the falling
// block was wider than the overlap, the cut-off piece becomes a fragment
// on the side that hung over: the left remainder when the falling block
// started left of the top block, the right remainder otherwise.
func Evaluate(active core.Span, top Block, colorIndex int) Landing {
	a := core.Overlap(active, core.NewSpan(top.CenterX, top.Width))
	if !a.Hit() {
		return Landing{Outcome: OutcomeMissed, Alignment: a}
	}

	l := Landing{
		Outcome:   OutcomeCommitted,
		Alignment: a,
		Block: Block{
			CenterX:    a.LeftEdge + a.Amount/2,
			Width:      a.Amount,
			ColorIndex: colorIndex,
		},
	}

	if a.Amount < active.Width {
		fw := active.Width - a.Amount
		var left float64
		if a.CurrentLeft < a.LastLeft {
			left = a.CurrentLeft
		} else {
			left = a.LastRight
		}
		l.Fragment = &Fragment{
			CenterX:    left + fw/2,
			Width:      fw,
			ColorIndex: colorIndex,
		}
	}
	return l
}
