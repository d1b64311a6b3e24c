package tui

import (
	"strings"
	"testing"
	"testing/fstest"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-glorp/internal/config"
	"github.com/vovakirdan/tui-glorp/internal/core"
	"github.com/vovakirdan/tui-glorp/internal/levels"
	"github.com/vovakirdan/tui-glorp/internal/registry"
)

func twoLevels(t *testing.T) []levels.Level {
	t.Helper()
	second := strings.Replace(corridorYAML, "id: corridor", "id: corridor2\norder: 2", 1)
	lvls, err := levels.NewFSLoader(fstest.MapFS{
		"lv/a.yaml": {Data: []byte(corridorYAML)},
		"lv/b.yaml": {Data: []byte(second)},
	}, "lv").LoadAll()
	if err != nil || len(lvls) != 2 {
		t.Fatalf("LoadAll() = %d levels, %v", len(lvls), err)
	}
	return lvls
}

func menuStep(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return mm
}

func TestMenuSelectsModeDifficultyAndLevel(t *testing.T) {
	lvls := twoLevels(t)
	m := NewMenuModel(nil, lvls, core.RuntimeConfig{ScreenW: 100, ScreenH: 30})

	if !strings.Contains(m.View(), "Glorp") {
		t.Errorf("menu view missing game title:\n%s", m.View())
	}

	m = menuStep(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = menuStep(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != nil {
		t.Fatal("selection should wait for the level choice")
	}
	if !strings.Contains(m.View(), "starting level") {
		t.Errorf("expected level select view:\n%s", m.View())
	}

	m = menuStep(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuStep(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selected()
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if sel.GameID != "glorp" {
		t.Errorf("GameID = %q, expected glorp", sel.GameID)
	}
	if sel.Difficulty != config.DifficultyHard {
		t.Errorf("Difficulty = %q, expected hard", sel.Difficulty)
	}
	if sel.StartLevel != "corridor2" {
		t.Errorf("StartLevel = %q, expected corridor2", sel.StartLevel)
	}

	g, err := Launch(*sel, registry.Options{Levels: lvls})
	if err != nil {
		t.Fatalf("Launch() failed: %v", err)
	}
	g.Reset(core.RuntimeConfig{TickRate: 10, Seed: 1})
	if g.State().Level != "corridor2" {
		t.Errorf("launched level = %q, expected corridor2", g.State().Level)
	}
}

func TestMenuBackFromLevelSelect(t *testing.T) {
	m := NewMenuModel(nil, twoLevels(t), core.RuntimeConfig{ScreenW: 100, ScreenH: 30})

	m = menuStep(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = menuStep(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.inLevelSelect {
		t.Error("esc should return to mode select")
	}

	m = menuStep(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
}
