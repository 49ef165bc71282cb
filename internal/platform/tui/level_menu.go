package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-beams/internal/core"
	"github.com/vovakirdan/tui-beams/internal/registry"
)

// LevelSelection holds the user's selection from the level picker.
type LevelSelection struct {
	Index int // Zero-based level index to start at
}

// LevelMenuModel is the level picker for a finite pack.
type LevelMenuModel struct {
	title        string
	cursor       int
	width        int
	height       int
	keyMapper    *KeyMapper
	levelNames   []string
	selection    LevelSelection
	choosing     bool
	quitting     bool
	back         bool
	scrollOffset int
	theme        Theme
}

// PackLevelNames returns "N. Name" labels for every level of a finite pack.
// Levels that fail to load are labelled as unavailable.
func PackLevelNames(pack registry.Pack) []string {
	names := make([]string, 0, pack.Count())
	for i := range pack.Count() {
		lvl, err := pack.Level(i)
		if err != nil {
			names = append(names, "(unavailable)")
			continue
		}
		names = append(names, fmt.Sprintf("%s  %dx%d", lvl.Name, lvl.Size.Rows, lvl.Size.Cols))
	}
	return names
}

// NewLevelMenuModel creates a new level selection model.
func NewLevelMenuModel(title string, levelNames []string, width, height int, theme Theme) LevelMenuModel {
	return LevelMenuModel{
		title:      title,
		width:      width,
		height:     height,
		keyMapper:  NewKeyMapper(),
		levelNames: levelNames,
		choosing:   true,
		theme:      theme,
	}
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.levelNames)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if len(m.levelNames) > 0 {
			m.choosing = false
			m.selection = LevelSelection{Index: m.cursor}
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m LevelMenuModel) visibleItems() int {
	return max(m.height-10, 3) // Account for header and footer
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelMenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level selection.
func (m LevelMenuModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a level:"), m.width))
	b.WriteString("\n\n")

	if len(m.levelNames) == 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	endIdx := min(m.scrollOffset+m.visibleItems(), len(m.levelNames))

	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}

	for i := m.scrollOffset; i < endIdx; i++ {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		line := style.Render(fmt.Sprintf("%s%2d. %s", cursor, i+1, m.levelNames[i]))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if endIdx < len(m.levelNames) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := m.theme.MenuControls.Render("Up/Down: Navigate  |  Enter: Select  |  Esc: Back  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m LevelMenuModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level picker for a finite pack.
// A nil selection means the user went back or quit.
func RunLevelSelector(pack registry.Pack, cfg core.RuntimeConfig, theme Theme) (*LevelSelection, error) {
	model := NewLevelMenuModel(pack.Title(), PackLevelNames(pack), cfg.ScreenW, cfg.ScreenH, theme)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
