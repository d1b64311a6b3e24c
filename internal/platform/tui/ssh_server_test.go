package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-glorp/internal/config"
	"github.com/vovakirdan/tui-glorp/internal/core"
	"github.com/vovakirdan/tui-glorp/internal/registry"
)

func sessionStep(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return sm
}

func TestSessionMenuGameMenu(t *testing.T) {
	cfg := config.Default()
	cfg.Movement.StepTime = 0
	base := registry.Options{Config: &cfg, Levels: twoLevels(t)[:1]}
	m := NewSessionModel(Services{}, base, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 1})

	m = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("screen = %v, expected game", m.screen)
	}

	m = sessionStep(t, m, runeKey('p'))
	m = sessionStep(t, m, TickMsg{})
	if !m.gameModel.State().Paused {
		t.Fatal("expected game to be paused")
	}

	m = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("screen = %v, expected menu after back", m.screen)
	}
	if m.quitting {
		t.Error("back should not end the session")
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := NewSessionModel(Services{}, registry.Options{Levels: twoLevels(t)}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	m = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("screen = %v, expected scoreboard", m.screen)
	}

	m = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("screen = %v, expected menu", m.screen)
	}

	m = sessionStep(t, m, runeKey('q'))
	if !m.quitting {
		t.Error("q should end the session")
	}
}
