package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-glorp/internal/core"
	"github.com/vovakirdan/tui-glorp/internal/registry"
	"github.com/vovakirdan/tui-glorp/internal/sfx"
	"github.com/vovakirdan/tui-glorp/internal/storage"
)

// statusTicks is how long a status line (clipboard, screenshot) stays up.
const statusTicks = 90

// Services are the optional sinks a running game reports to.
type Services struct {
	Store  *storage.Store
	Sound  *sfx.Player
	Logger *log.Logger
	// Renderer styles output for one terminal. Nil means stdout.
	Renderer *lipgloss.Renderer
}

// GameModel is the Bubble Tea model for running a game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	palette    *Palette
	services   Services
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	status     string
	statusLeft int
	quitting   bool
	backToMenu bool
	quitOnBack bool // Standalone programs exit instead of switching to a menu
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a model for the given game.
func NewGameModel(game registry.Game, svc Services, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if svc.Logger == nil {
		svc.Logger = log.New(io.Discard)
	}
	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		palette:    NewPalette(svc.Renderer),
		services:   svc,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "ctrl+y":
		m.copyScreen()
		return m, nil
	case "m":
		if m.services.Sound != nil {
			m.services.Sound.SetMuted(!m.services.Sound.Muted())
			m.setStatus(fmt.Sprintf("sound muted: %v", m.services.Sound.Muted()))
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu when the run is over or paused
	if action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	// A finished run restarts from scratch with a fresh seed.
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame.Clone())
	m.gameState = result.State
	m.record(result.Events)

	if m.services.Sound != nil {
		m.services.Sound.PlayEvents(result.Events)
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		if m.services.Store != nil {
			if _, err := m.services.Store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
				m.services.Logger.Warn("cannot save score", "err", err)
			}
		}
		m.scoreSaved = true
	}

	if m.statusLeft > 0 {
		m.statusLeft--
	}
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// record persists finished level attempts.
func (m *GameModel) record(events []core.Event) {
	if m.services.Store == nil {
		return
	}
	for _, e := range events {
		if e.Run == nil {
			continue
		}
		run := storage.LevelRun{
			GameID:    m.game.ID(),
			LevelID:   e.Level,
			Completed: e.Run.Completed,
			Duration:  time.Duration(e.Run.Seconds * float64(time.Second)),
			PowerLeft: e.Run.PowerLeft,
			Glorps:    e.Run.Glorps,
			Score:     e.Run.Score,
		}
		if _, err := m.services.Store.SaveLevelRun(run); err != nil {
			m.services.Logger.Warn("cannot save level run", "level", e.Level, "err", err)
		}
	}
}

func (m *GameModel) setStatus(s string) {
	m.status = s
	m.statusLeft = statusTicks
}

// copyScreen puts the current frame on the system clipboard.
func (m *GameModel) copyScreen() {
	m.game.Render(m.screen)
	if err := clipboard.WriteAll(m.screen.String()); err != nil {
		m.services.Logger.Debug("clipboard unavailable", "err", err)
		m.setStatus("clipboard unavailable")
		return
	}
	m.setStatus("frame copied to clipboard")
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.setStatus("screenshot failed")
		return
	}
	dir := filepath.Join(home, ".glorp", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.setStatus("screenshot failed")
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.setStatus("screenshot failed")
		return
	}
	m.setStatus("saved " + path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.statusLeft > 0 && m.status != "" {
		m.screen.DrawTextColor(1, m.screen.Height()-1, m.status, core.ColorBrightMagenta)
	}
	return m.palette.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last game state seen by the model.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run starts a Bubble Tea program for the game. It returns true when the
// player asked to go back to the menu rather than quit.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewGameModel(game, svc, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(GameModel); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
