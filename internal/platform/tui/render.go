package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-beams/internal/core"
)

// styleKey identifies a run of cells that share a style.
type styleKey struct {
	color core.Color
	hex   string
}

// style returns the lipgloss style for a cell under the given theme.
func (t Theme) style(k styleKey) lipgloss.Style {
	if k.hex != "" {
		if t.UseHex {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(k.hex))
		}
		return lipgloss.NewStyle().Foreground(t.BeamFallback)
	}
	if c, ok := t.Palette[k.color]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle()
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, theme Theme) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[styleKey]lipgloss.Style)

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			key := styleKey{color: cell.Color, hex: cell.Hex}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != key.color || cell.Hex != key.hex {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := styles[key]
			if !ok {
				style = theme.style(key)
				styles[key] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
