package stack

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-tower/internal/core"
)

// Visual characters for rendering
const (
	BlockChar    = '█'
	FragmentChar = '▓'
	BaseColor    = core.ColorBrown
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.session.Snapshot()
	r := viewport{offsetY: snap.CameraOffsetY, top: g.hudRows, h: snap.BlockHeight}

	r.drawTower(dst, snap)

	if a := snap.ActiveBlock; a != nil {
		r.fill(dst, a.X, a.Width, a.Y-snap.BlockHeight/2, BlockChar, blockColor(a.Color))
	}
	for _, f := range snap.Fragments {
		r.fill(dst, f.X, f.Width, f.Y-snap.BlockHeight/2, FragmentChar, blockColor(f.Color))
	}

	g.drawHUD(dst, snap)
	if snap.Started && !snap.Ended && towerAboveView(snap) {
		msg := " TOWER LEFT THE SCREEN "
		dst.DrawText((dst.Width()-len(msg))/2, 0, msg)
	}

	switch {
	case !snap.Started:
		dst.DrawMessage("TOWER STACK", "Press SPACE to start")
	case snap.Ended:
		dst.DrawMessage("GAME OVER", fmt.Sprintf("Final Score: %d  |  Press R to retry", snap.Score))
	case g.paused:
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
}

func (g *Game) drawHUD(dst *core.Screen, snap Snapshot) {
	if g.hudRows == 0 {
		return
	}
	dst.DrawHLine(0, 0, dst.Width(), ' ')
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", snap.Score))
	spd := fmt.Sprintf(" Spd: %.1f ", snap.Speed)
	dst.DrawText(dst.Width()-len(spd)-2, 0, spd)
}

// towerAboveView reports whether the next landing spot is above the
// visible area.
func towerAboveView(snap Snapshot) bool {
	return snap.TowerTopY-snap.BlockHeight+snap.CameraOffsetY < 0
}

// viewport maps world coordinates onto screen cells below the HUD.
type viewport struct {
	offsetY float64
	top     int
	h       float64
}

// fill draws a block-height bar whose top edge is at world y topEdge.
func (v viewport) fill(dst *core.Screen, centerX, width, topEdge float64, ch rune, c core.Color) {
	x0 := int(math.Round(centerX - width/2))
	x1 := int(math.Round(centerX + width/2))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	y0 := int(math.Round(topEdge + v.offsetY))
	y1 := int(math.Round(topEdge + v.h + v.offsetY))
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for y := core.Max(y0, 0); y < y1; y++ {
		for x := x0; x < x1; x++ {
			dst.SetColor(x, y+v.top, ch, c)
		}
	}
}

// drawTower draws committed blocks from the base upward.
func (v viewport) drawTower(dst *core.Screen, snap Snapshot) {
	n := len(snap.TowerBlocks)
	for i, b := range snap.TowerBlocks {
		// Block i sits (n-1-i) heights below the top edge.
		topEdge := snap.TowerTopY + float64(n-1-i)*snap.BlockHeight
		v.fill(dst, b.X, b.Width, topEdge, BlockChar, blockColor(b.Color))
	}
}

func blockColor(i int) core.Color {
	if i < 0 {
		return BaseColor
	}
	return core.PaletteColor(i)
}
