package stack

// BlockView is a committed tower block as seen by a presentation layer.
type BlockView struct {
	X     float64 `json:"x"`
	Width float64 `json:"width"`
	Color int     `json:"color"`
}

// ActiveView is the falling block.
type ActiveView struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
	Phase string  `json:"phase"`
	Color int     `json:"color"`
}

// FragmentView is a falling sliced-off piece.
type FragmentView struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
	Color int     `json:"color"`
}

// Snapshot is a read-only copy of the session, safe to hand to renderers
// and transports.
type Snapshot struct {
	TowerBlocks   []BlockView    `json:"towerBlocks"`
	ActiveBlock   *ActiveView    `json:"activeBlock"`
	Fragments     []FragmentView `json:"fragments"`
	Score         int            `json:"score"`
	Ended         bool           `json:"ended"`
	Started       bool           `json:"started"`
	CameraOffsetY float64        `json:"cameraOffsetY"`
	TowerTopY     float64        `json:"towerTopY"`
	BlockHeight   float64        `json:"blockHeight"`
	Speed         float64        `json:"speed"`
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	blocks := s.tower.Blocks()
	snap := Snapshot{
		TowerBlocks:   make([]BlockView, len(blocks)),
		Score:         s.score,
		Ended:         s.ended,
		Started:       s.started,
		CameraOffsetY: s.CameraOffsetY(),
		TowerTopY:     s.tower.TopY(),
		BlockHeight:   s.params.BlockHeight,
		Speed:         s.Speed(),
	}
	for i, b := range blocks {
		snap.TowerBlocks[i] = BlockView{X: b.CenterX, Width: b.Width, Color: b.ColorIndex}
	}

	if a := s.active; a != nil {
		snap.ActiveBlock = &ActiveView{
			X:     a.osc.CenterX,
			Y:     a.descent.Y(),
			Width: a.width,
			Phase: a.descent.Phase().String(),
			Color: a.colorIndex,
		}
	}

	frags := s.fragments.Items()
	snap.Fragments = make([]FragmentView, len(frags))
	for i, f := range frags {
		snap.Fragments[i] = FragmentView{X: f.CenterX, Y: f.Y, Width: f.Width, Color: f.ColorIndex}
	}
	return snap
}
