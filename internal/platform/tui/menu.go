package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-glorp/internal/config"
	"github.com/vovakirdan/tui-glorp/internal/core"
	"github.com/vovakirdan/tui-glorp/internal/levels"
	"github.com/vovakirdan/tui-glorp/internal/registry"
	"github.com/vovakirdan/tui-glorp/internal/storage"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuItem represents a selectable game mode in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Best   int
}

// MenuModel lets the player pick a mode, a difficulty and a start level.
type MenuModel struct {
	items          []MenuItem
	levels         []levels.Level
	cursor         int
	levelCursor    int
	difficulty     int // index into config.Presets
	inLevelSelect  bool
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuResult
	openScoreboard bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, lvls []levels.Level, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			if best, err := store.HighScore(g.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:      items,
		levels:     lvls,
		difficulty: presetIndex(config.DifficultyNormal),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
}

func presetIndex(p config.DifficultyPreset) int {
	for i, q := range config.Presets {
		if q == p {
			return i
		}
	}
	return 0
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)
	if action == MenuActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleModeSelectKey(action)
}

func (m MenuModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionLeft:
		m.difficulty = (m.difficulty + len(config.Presets) - 1) % len(config.Presets)
	case MenuActionRight:
		m.difficulty = (m.difficulty + 1) % len(config.Presets)
	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		if len(m.levels) > 1 {
			m.inLevelSelect = true
			m.levelCursor = 0
			return m, nil
		}
		return m.choose("")
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionBack:
		m.inLevelSelect = false
	case MenuActionSelect:
		return m.choose(m.levels[m.levelCursor].ID)
	}
	return m, nil
}

func (m MenuModel) choose(startLevel string) (tea.Model, tea.Cmd) {
	m.selected = &MenuResult{
		GameID:     m.items[m.cursor].GameID,
		StartLevel: startLevel,
		Difficulty: config.Presets[m.difficulty],
		Config:     m.config,
	}
	return m, tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewModeSelect()
}

func (m MenuModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  G L O R P  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a mode", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %s", item.Title)
		if item.Best > 0 {
			line += fmt.Sprintf("  (best %d)", item.Best)
		}
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + line[2:])
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	diff := fmt.Sprintf("Difficulty: < %s >", config.Presets[m.difficulty])
	b.WriteString(centerText(diff, m.width))
	b.WriteString("\n\n")

	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(menuDimStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")
	return b.String()
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("Choose a starting level", m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.levels {
		line := fmt.Sprintf("  %2d. %s", i+1, lvl.Name)
		if m.store != nil {
			if best, err := m.store.BestLevelRun(lvl.ID); err == nil && best != nil {
				line += fmt.Sprintf("  (best %d in %.1fs)", best.Score, best.Duration.Seconds())
			}
		}
		if i == m.levelCursor {
			line = menuCursorStyle.Render("> " + line[2:])
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(menuDimStyle.Render(centerText("Up/Down: Navigate  |  Enter: Start  |  Esc: Back", m.width)))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen mode and level, or nil if none selected.
func (m MenuModel) Selected() *MenuResult {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within the given width. ANSI styling does not
// count toward the length.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	StartLevel      string
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Launch creates the selected game, applying the chosen difficulty on top
// of the base options.
func Launch(sel MenuResult, base registry.Options) (registry.Game, error) {
	cfg := config.Default()
	if base.Config != nil {
		cfg = *base.Config
	}
	config.ApplyPreset(&cfg, sel.Difficulty)

	opts := base
	opts.Config = &cfg
	if sel.StartLevel != "" {
		opts.StartLevel = sel.StartLevel
	}
	return registry.Create(sel.GameID, opts)
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, lvls []levels.Level, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, lvls, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	if m.WantsScoreboard() {
		return MenuResult{Config: m.Config(), WantsScoreboard: true}, nil
	}
	if sel := m.Selected(); sel != nil && !m.IsQuitting() {
		return *sel, nil
	}
	return MenuResult{Config: m.Config(), Quit: true}, nil
}
