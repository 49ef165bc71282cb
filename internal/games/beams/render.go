package beams

import (
	"fmt"
	"strings"

	platformcore "github.com/vovakirdan/tui-beams/internal/core"
	"github.com/vovakirdan/tui-beams/internal/games/beams/core"
)

const hudHeight = 3

// layout places the board on the screen. The board is drawn inside a
// one-character frame; each grid cell is cellW characters wide.
type layout struct {
	cellW    int
	board    platformcore.Rect // Inner area holding the cells
	tooSmall bool
}

func computeLayout(size core.GridSize, screenW, screenH int) layout {
	l := layout{cellW: 3}
	if size.Cols*l.cellW+2 > screenW {
		l.cellW = 2
	}

	w := size.Cols * l.cellW
	h := size.Rows
	if w+2 > screenW || h+2+hudHeight+1 > screenH {
		l.tooSmall = true
		return l
	}

	x := (screenW - w) / 2
	y := hudHeight + 1 + (screenH-hudHeight-1-h-2)/2
	l.board = platformcore.NewRect(x, y, w, h)
	return l
}

// CellAt maps a screen position to the grid cell drawn there.
func (g *Game) CellAt(x, y int) (core.Pos, bool) {
	if g.layout.tooSmall {
		return core.Pos{}, false
	}
	row, col, ok := g.layout.board.Cell(x, y, g.layout.cellW)
	return core.P(row, col), ok
}

// ScreenPos returns the screen position of the first character of a cell.
func (g *Game) ScreenPos(p core.Pos) (x, y int) {
	return g.layout.board.X + p.Col*g.layout.cellW, g.layout.board.Y + p.Row
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	switch {
	case g.phase == PhaseBroken:
		msg := "Level failed to load"
		if g.loadErr != nil {
			msg = g.loadErr.Error()
		}
		g.renderOverlay(dst, "Cannot load level", msg)
		return
	case g.phase == PhaseComplete:
		g.renderOverlay(dst, "All levels cleared!", fmt.Sprintf("Final score: %d", g.score))
		return
	case g.session == nil:
		return
	case g.layout.tooSmall:
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderBoard(dst)

	switch {
	case g.phase == PhaseCleared:
		g.renderOverlay(dst, "Level cleared!", "N: next level | R: replay")
	case g.phase == PhaseFailed:
		g.renderOverlay(dst, "Out of lives", "R: retry level")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " BEAMS | " + g.pack.Title()
	if g.session != nil {
		lvl := g.session.Level()
		progress := fmt.Sprintf("%d", g.levelIndex+1)
		if n := g.pack.Count(); n > 0 {
			progress += fmt.Sprintf("/%d", n)
		}
		hud += fmt.Sprintf(" | Level %s: %s | Score: %d | ", progress, lvl.Name, g.score)
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)

	if g.session != nil {
		x := len([]rune(hud))
		total := g.session.Level().Lives
		for i := 0; i < total; i++ {
			if i < g.session.Lives() {
				dst.SetWithColor(x+i, 0, '♥', platformcore.ColorPink)
			} else {
				dst.SetWithColor(x+i, 0, '♡', platformcore.ColorGray)
			}
		}
	}

	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)
	dst.DrawTextWithColor(0, 2, " Arrows/hjkl: move | Space: tap | Click: tap | ?: hint | R: restart | P: pause | Q: quit", platformcore.ColorGray)
}

// renderBoard draws the frame, empty cells, beams and cursor.
func (g *Game) renderBoard(dst *platformcore.Screen) {
	b := g.layout.board
	cw := g.layout.cellW
	size := g.session.Level().Size

	dst.DrawBox(b.Grow(1), platformcore.ColorGray)

	for r := 0; r < size.Rows; r++ {
		for c := 0; c < size.Cols; c++ {
			x, y := g.ScreenPos(core.P(r, c))
			dst.SetWithColor(x+cw/2, y, '·', platformcore.ColorGray)
		}
	}

	for _, beam := range g.session.Beams() {
		g.renderBeam(dst, beam, size)
	}

	// Cursor brackets
	x, y := g.ScreenPos(g.cursor)
	dst.SetWithColor(x, y, '[', platformcore.ColorBrightYellow)
	if cw >= 3 {
		dst.SetWithColor(x+cw-1, y, ']', platformcore.ColorBrightYellow)
	}
}

func (g *Game) renderBeam(dst *platformcore.Screen, beam *core.Beam, size core.GridSize) {
	cw := g.layout.cellW
	dir := beam.Direction()

	shiftCells := 0
	if s, ok := g.slides[beam.ID]; ok {
		shiftCells = s.cells()
	}
	dx, dy := 0, 0
	if bn, ok := g.bounces[beam.ID]; ok {
		dx, dy = bn.shift(cw)
	}

	body := '█'
	if beam.ID == g.hint && (g.hintTicks/8)%2 == 0 {
		body = '▓'
	}

	for i, cell := range beam.Cells {
		p := cell.Pos()
		for step := 0; step < shiftCells; step++ {
			p = p.Step(dir)
		}
		if !size.InBounds(p) {
			continue
		}

		x, y := g.ScreenPos(p)
		x += dx
		y += dy
		if !g.layout.board.Contains(x, y) {
			continue
		}

		for k := 0; k < cw; k++ {
			dst.SetHex(x+k, y, body, beam.Color)
		}
		if i == len(beam.Cells)-1 {
			dst.SetHex(x+cw/2, y, arrow(dir), beam.Color)
		}
	}
}

func arrow(d core.Dir) rune {
	switch d {
	case core.DirUp:
		return '▲'
	case core.DirDown:
		return '▼'
	case core.DirLeft:
		return '◀'
	case core.DirRight:
		return '▶'
	default:
		return '●'
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	maxLen := len([]rune(line1))
	if n := len([]rune(line2)); n > maxLen {
		maxLen = n
	}
	box := platformcore.CenteredRect(dst.Width(), dst.Height(), maxLen+4, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, platformcore.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, strings.TrimSpace(line2), platformcore.ColorGray)
}
