package registry

import (
	"testing"

	"github.com/vovakirdan/tui-tower/internal/core"
)

type fakeGame struct{ id string }

func (g *fakeGame) ID() string    { return g.id }
func (g *fakeGame) Title() string { return "Fake " + g.id }

func (g *fakeGame) Reset(core.RuntimeConfig) {}

func (g *fakeGame) Step(core.InputFrame) core.StepResult {
	return core.StepResult{}
}

func (g *fakeGame) Render(*core.Screen) {}

func (g *fakeGame) State() core.GameState {
	return core.GameState{}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_fake_b", func() Game { return &fakeGame{id: "zz_fake_b"} })
	Register("zz_fake_a", func() Game { return &fakeGame{id: "zz_fake_a"} })

	if !Exists("zz_fake_a") || Exists("zz_missing") {
		t.Error("Exists() reports wrong membership")
	}

	g, err := Create("zz_fake_a")
	if err != nil || g.ID() != "zz_fake_a" {
		t.Fatalf("Create() = %v, %v", g, err)
	}
	if _, err := Create("zz_missing"); err == nil {
		t.Error("Create() of an unknown ID should fail")
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("List() not sorted: %v", list)
		}
	}
	var found bool
	for _, info := range list {
		if info.ID == "zz_fake_b" {
			found = info.Title == "Fake zz_fake_b"
		}
	}
	if !found {
		t.Error("List() should carry titles")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &fakeGame{id: "zz_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz_dup", func() Game { return &fakeGame{id: "zz_dup"} })
}
