package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-beams/internal/registry"
	"github.com/vovakirdan/tui-beams/internal/storage"
)

const maxScoreRows = 50

// ScoreView selects what the scoreboard lists for a pack.
type ScoreView int

const (
	ViewRuns    ScoreView = iota // Best runs
	ViewLevels                   // Attempts and win rate per level
	ViewPlayers                  // Best score per player
)

var scoreViewNames = []string{"Runs", "Levels", "Players"}

func (v ScoreView) String() string {
	if int(v) < len(scoreViewNames) {
		return scoreViewNames[v]
	}
	return "?"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Scroll   key.Binding
	NextPack key.Binding
	PrevPack key.Binding
	NextView key.Binding
	PrevView key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.PrevPack, k.NextPack, k.NextView, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll:   key.NewBinding(key.WithKeys("up", "k", "down", "j"), key.WithHelp("↑/↓", "scroll")),
		PrevPack: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev pack")),
		NextPack: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next pack")),
		NextView: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "runs/levels/players")),
		PrevView: key.NewBinding(key.WithKeys("shift+tab")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows runs, level statistics and player bests per pack.
// Data comes from the recorder's store and leaderboard; without a
// leaderboard the store answers per-player bests.
type ScoreboardModel struct {
	packs    []registry.PackInfo
	pack     int
	view     ScoreView
	store    *storage.Store
	board    storage.Leaderboard
	player   string
	theme    Theme
	table    table.Model
	empty    string // Shown instead of the table when nothing was loaded
	footer   string
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
	back     bool
}

// NewScoreboardModel creates a scoreboard over the recorder's backends.
// A nil recorder shows empty tables.
func NewScoreboardModel(rec *Recorder, theme Theme, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		packs:  registry.List(),
		theme:  theme,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	if rec != nil {
		m.store = rec.Store
		m.board = rec.Board
		m.player = rec.Player
	}
	if m.board == nil && m.store != nil {
		m.board = storage.NewStoreLeaderboard(m.store)
	}
	m.help.Width = width
	m.reload()
	return m
}

func (m ScoreboardModel) packID() string {
	if len(m.packs) == 0 {
		return ""
	}
	return m.packs[m.pack].ID
}

// reload fetches the rows of the current pack and view.
func (m *ScoreboardModel) reload() {
	m.empty, m.footer = "", ""
	var (
		cols []table.Column
		rows []table.Row
		err  error
	)

	switch m.view {
	case ViewLevels:
		cols, rows, err = m.levelRows()
	case ViewPlayers:
		cols, rows, err = m.playerRows()
	default:
		cols, rows, err = m.runRows()
	}

	switch {
	case err != nil:
		m.empty = "Could not load scores: " + err.Error()
	case len(rows) == 0 && m.view == ViewLevels:
		m.empty = "No levels played yet."
	case len(rows) == 0:
		m.empty = "No scores recorded yet.\nClear a level to set a high score!"
	}

	m.table = table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
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
	m.table.SetStyles(s)
}

func (m *ScoreboardModel) runRows() ([]table.Column, []table.Row, error) {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 14},
		{Title: "Score", Width: 8},
		{Title: "Levels", Width: 6},
		{Title: "Date", Width: 12},
	}
	if m.store == nil {
		return cols, nil, nil
	}

	scores, err := m.store.TopScores(m.packID(), maxScoreRows)
	if err != nil {
		return cols, nil, err
	}
	rows := make([]table.Row, 0, len(scores))
	for i, s := range scores {
		player := s.Player
		if player == "" {
			player = "-"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			player,
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Levels),
			s.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	return cols, rows, nil
}

func (m *ScoreboardModel) levelRows() ([]table.Column, []table.Row, error) {
	cols := []table.Column{
		{Title: "Level", Width: 6},
		{Title: "Tries", Width: 6},
		{Title: "Wins", Width: 6},
		{Title: "Win %", Width: 6},
		{Title: "Avg ♥", Width: 6},
	}
	if m.store == nil {
		return cols, nil, nil
	}

	stats, err := m.store.PackLevelStats(m.packID())
	if err != nil {
		return cols, nil, err
	}
	rows := make([]table.Row, 0, len(stats))
	attempts, wins := 0, 0
	for _, s := range stats {
		attempts += s.Attempts
		wins += s.Wins
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", s.Level),
			fmt.Sprintf("%d", s.Attempts),
			fmt.Sprintf("%d", s.Wins),
			fmt.Sprintf("%.0f%%", s.WinRate()*100),
			fmt.Sprintf("%.1f", s.AvgLives),
		})
	}
	if attempts > 0 {
		m.footer = fmt.Sprintf("%d levels, %d of %d attempts cleared", len(stats), wins, attempts)
	}
	return cols, rows, nil
}

func (m *ScoreboardModel) playerRows() ([]table.Column, []table.Row, error) {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 20},
		{Title: "Best", Width: 8},
	}
	if m.board == nil {
		return cols, nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	top, err := m.board.Top(ctx, m.packID(), maxScoreRows)
	if err != nil {
		return cols, nil, err
	}
	rows := make([]table.Row, 0, len(top))
	for i, e := range top {
		rows = append(rows, table.Row{fmt.Sprintf("%d", i+1), e.Player, fmt.Sprintf("%d", e.Score)})
	}

	if m.player != "" {
		rank, err := m.board.Rank(ctx, m.packID(), m.player)
		switch {
		case err == nil:
			m.footer = fmt.Sprintf("%s is ranked #%d", m.player, rank)
		case errors.Is(err, storage.ErrNotRanked):
			m.footer = fmt.Sprintf("%s has no score here yet", m.player)
		}
	}
	return cols, rows, nil
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextPack):
			m.shiftPack(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevPack):
			m.shiftPack(-1)
			return m, nil
		case key.Matches(msg, m.keys.NextView):
			m.view = (m.view + 1) % ScoreView(len(scoreViewNames))
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.PrevView):
			m.view = (m.view + ScoreView(len(scoreViewNames)) - 1) % ScoreView(len(scoreViewNames))
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) shiftPack(delta int) {
	if len(m.packs) == 0 {
		return
	}
	m.pack = (m.pack + delta + len(m.packs)) % len(m.packs)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if len(m.packs) > 0 {
		title = fmt.Sprintf("HIGH SCORES  ◀ %s ▶", m.packs[m.pack].Title)
	}
	b.WriteString(centerText(m.theme.MenuTitle.Render(title), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(scoreViewNames))
	for i, name := range scoreViewNames {
		if ScoreView(i) == m.view {
			tabs[i] = m.theme.MenuItemActive.Render(name)
		} else {
			tabs[i] = m.theme.MenuItemNormal.Render(name)
		}
	}
	b.WriteString(centerText(strings.Join(tabs, "  "), m.width))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := m.table.View()
	if m.empty != "" {
		content = m.theme.MenuDescription.Italic(true).Padding(1, 4).Render(m.empty)
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box.Render(content)))
	b.WriteString("\n")

	if m.footer != "" {
		b.WriteString(centerText(m.theme.MenuDescription.Render(m.footer), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuControls.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// CurrentView returns the selected view.
func (m ScoreboardModel) CurrentView() ScoreView {
	return m.view
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(rec *Recorder, theme Theme, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(rec, theme, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(ScoreboardModel); ok {
		return m.IsGoingBack(), nil
	}
	return false, nil
}
