package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-glorp/internal/levels"
	"github.com/vovakirdan/tui-glorp/internal/registry"
	"github.com/vovakirdan/tui-glorp/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show board list sidebar
	sidebarWidth       = 24  // Width of board list sidebar
	maxScores          = 100 // Max rows to load
)

// boardKind selects which table a board shows.
type boardKind int

const (
	boardMode  boardKind = iota // Campaign totals for a game mode
	boardLevel                  // Individual attempts at one level
)

// board is one entry in the scoreboard sidebar.
type board struct {
	kind  boardKind
	id    string
	title string
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Back      key.Binding
	Quit      key.Binding
	NextBoard key.Binding
	PrevBoard key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextBoard, k.PrevBoard, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextBoard, k.PrevBoard},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev board"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next board"),
		),
		NextBoard: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next board"),
		),
		PrevBoard: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev board"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	boards      []board
	cursor      int
	store       *storage.Store
	rows        []table.Row
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard with one board per game mode
// followed by one per level.
func NewScoreboardModel(store *storage.Store, lvls []levels.Level, width, height int) ScoreboardModel {
	var boards []board
	for _, g := range registry.List() {
		boards = append(boards, board{kind: boardMode, id: g.ID, title: g.Title})
	}
	for _, l := range lvls {
		boards = append(boards, board{kind: boardLevel, id: l.ID, title: l.Name})
	}

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		boards:      boards,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.selectBoard(0)
	return m
}

func (m *ScoreboardModel) current() (board, bool) {
	if len(m.boards) == 0 {
		return board{}, false
	}
	return m.boards[m.cursor], true
}

// selectBoard switches boards, rebuilding the table since the two board
// kinds have different columns.
func (m *ScoreboardModel) selectBoard(i int) {
	if len(m.boards) > 0 {
		m.cursor = (i%len(m.boards) + len(m.boards)) % len(m.boards)
	}
	m.table = m.createTable()
	m.loadRows()
}

func (m *ScoreboardModel) columns() []table.Column {
	b, _ := m.current()
	if b.kind == boardLevel {
		return []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Result", Width: 7},
			{Title: "Score", Width: 7},
			{Title: "Time", Width: 8},
			{Title: "Glorps", Width: 7},
			{Title: "Date", Width: 13},
		}
	}

	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: 18},
	}
	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if tableWidth > 40 {
		columns[1].Width = 12
		columns[2].Width = min(tableWidth-22, 20)
	}
	return columns
}

// createTable creates a new table with columns for the current board.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRows fills the table for the current board.
func (m *ScoreboardModel) loadRows() {
	m.rows = nil
	b, ok := m.current()
	if ok && m.store != nil {
		switch b.kind {
		case boardMode:
			if scores, err := m.store.TopScores(b.id, maxScores); err == nil {
				m.rows = scoreRows(scores)
			}
		case boardLevel:
			if runs, err := m.store.LevelRuns(b.id, maxScores); err == nil {
				m.rows = runRows(runs)
			}
		}
	}
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func scoreRows(scores []storage.ScoreEntry) []table.Row {
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// runRows ranks completed runs first, then by score.
func runRows(runs []storage.LevelRun) []table.Row {
	slices.SortStableFunc(runs, func(a, b storage.LevelRun) int {
		if a.Completed != b.Completed {
			if a.Completed {
				return -1
			}
			return 1
		}
		return cmp.Compare(b.Score, a.Score)
	})

	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		result := "fail"
		if r.Completed {
			result = "clear"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			result,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%.1fs", r.Duration.Seconds()),
			fmt.Sprintf("%d", r.Glorps),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextBoard), key.Matches(msg, m.keys.Right):
			m.selectBoard(m.cursor + 1)
			return m, nil

		case key.Matches(msg, m.keys.PrevBoard), key.Matches(msg, m.keys.Left):
			m.selectBoard(m.cursor - 1)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.help.Width = msg.Width
		m.selectBoard(m.cursor)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "HIGH SCORES"
	if cur, ok := m.current(); ok {
		if cur.kind == boardLevel {
			title = fmt.Sprintf("LEVEL RUNS - %s", cur.title)
		} else {
			title = fmt.Sprintf("HIGH SCORES - %s", cur.title)
		}
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// renderWideLayout renders the board list beside the table.
func (m ScoreboardModel) renderWideLayout() string {
	var sidebar strings.Builder
	lastKind := boardKind(-1)
	for i, bd := range m.boards {
		if bd.kind != lastKind {
			if bd.kind == boardMode {
				sidebar.WriteString("Modes\n")
			} else {
				sidebar.WriteString("\nLevels\n")
			}
			sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
			sidebar.WriteString("\n")
			lastKind = bd.kind
		}

		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(bd.title, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	left := boxStyle.Width(sidebarWidth).Render(sidebar.String())
	right := boxStyle.Render(m.renderTableContent())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// renderNarrowLayout shows only the current board name with arrows.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	if cur, ok := m.current(); ok {
		tab := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1).
			Render(truncate(cur.title, max(m.width-10, 4)))
		b.WriteString(centerText("< "+tab+" >", m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(centerText(boxStyle.Render(m.renderTableContent()), m.width))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.rows) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("Nothing recorded yet.\nClear a level to get on the board!")
	}
	return m.table.View()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, lvls []levels.Level, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, lvls, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
