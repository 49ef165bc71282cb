package core

// Color represents a palette foreground color for a screen cell.
// Beam colors from level files bypass the palette via Cell.Hex.
type Color uint8

// Predefined colors for interface elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorBrightWhite
	ColorPink
	ColorGray
)
