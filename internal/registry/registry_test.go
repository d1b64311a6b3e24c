package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-glorp/internal/core"
)

type stubGame struct {
	id    string
	level string
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{Level: g.level} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub", "Stub", func(opts Options) Game {
		return &stubGame{id: "zz_stub", level: opts.StartLevel}
	})

	if !Exists("zz_stub") {
		t.Fatal("Exists(zz_stub) = false, expected true")
	}

	g, err := Create("zz_stub", Options{StartLevel: "boom"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.State().Level != "boom" {
		t.Errorf("options not passed through: level = %q", g.State().Level)
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz_stub" {
			found = info.Title == "Stub"
		}
	}
	if !found {
		t.Error("List() missing zz_stub with its title")
	}

	if _, err := Create("missing", Options{}); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create(missing) error = %v, expected ErrUnknownGame", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", "Dup", func(Options) Game { return &stubGame{} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz_dup", "Dup", func(Options) Game { return &stubGame{} })
}
