package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tower/internal/core"
)

func TestColorStylesCoverPalette(t *testing.T) {
	for _, c := range core.BlockPalette {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for palette colour %d", c)
		}
	}
	if _, ok := colorStyles[core.ColorBrown]; !ok {
		t.Error("no style for the base colour")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(0, 0, "Score: 3")
	s.SetColor(10, 1, '█', core.ColorBrown)

	out := RenderScreen(s)
	if !strings.Contains(out, "Score: 3") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if !strings.Contains(out, "█") {
		t.Errorf("rendered output lost the block: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("rendered %d line breaks, expected 1", got)
	}
}
