package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-beams/internal/core"
)

// Theme contains the visual styles for the game screen and menus.
type Theme struct {
	Name string

	// Palette maps interface colors to terminal colors
	Palette map[core.Color]lipgloss.Color

	// UseHex renders beam colors from level files as true colors.
	// When false every beam falls back to BeamFallback.
	UseHex       bool
	BeamFallback lipgloss.Color

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuControls    lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Name: "default",
		Palette: map[core.Color]lipgloss.Color{
			core.ColorRed:          "1",
			core.ColorGreen:        "2",
			core.ColorYellow:       "3",
			core.ColorBlue:         "4",
			core.ColorMagenta:      "5",
			core.ColorCyan:         "6",
			core.ColorWhite:        "7",
			core.ColorBrightRed:    "9",
			core.ColorBrightYellow: "11",
			core.ColorBrightWhite:  "15",
			core.ColorPink:         "205",
			core.ColorGray:         "245",
		},
		UseHex:       true,
		BeamFallback: "255",

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuControls:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// NeonTheme returns a brighter theme for dark terminals.
func NeonTheme() Theme {
	theme := DefaultTheme()
	theme.Name = "neon"
	theme.Palette[core.ColorCyan] = "87"
	theme.Palette[core.ColorPink] = "199"
	theme.Palette[core.ColorBrightYellow] = "227"
	theme.Palette[core.ColorGray] = "240"
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("199")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("87")).Bold(true)
	return theme
}

// MonochromeTheme returns a grayscale theme. Beams are told apart by shape only.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Name = "mono"
	for c := range theme.Palette {
		theme.Palette[c] = "250"
	}
	theme.Palette[core.ColorBrightWhite] = "255"
	theme.Palette[core.ColorGray] = "240"
	theme.UseHex = false
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	return theme
}

// ThemeNames lists the themes accepted by ThemeByName.
func ThemeNames() []string {
	return []string{"default", "neon", "mono"}
}

// ThemeByName returns a theme, falling back to the default for unknown names.
func ThemeByName(name string) Theme {
	switch name {
	case "neon":
		return NeonTheme()
	case "mono", "monochrome":
		return MonochromeTheme()
	default:
		return DefaultTheme()
	}
}

// Global theme variable (can be changed at runtime)
var currentTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return currentTheme
}
