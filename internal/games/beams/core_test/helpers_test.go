package core_test

import (
	"github.com/vovakirdan/tui-beams/internal/games/beams/core"
)

// chain builds the cells of one beam from positions listed start to tip.
// Every cell points to the next; the tip gets tipDir.
func chain(color string, tipDir core.Dir, positions ...core.Pos) []core.Cell {
	cells := make([]core.Cell, len(positions))
	for i, p := range positions {
		c := core.Cell{Row: p.Row, Col: p.Col, Role: core.RolePath, Color: color}
		if i == 0 {
			c.Role = core.RoleStart
		}
		if i == len(positions)-1 {
			c.Role = core.RoleEnd
			c.Dir = tipDir
		} else {
			c.Dir = core.DirBetween(p, positions[i+1])
		}
		cells[i] = c
	}
	return cells
}

func level(rows, cols, lives int, groups ...[]core.Cell) core.Level {
	var cells []core.Cell
	for _, g := range groups {
		cells = append(cells, g...)
	}
	return core.Level{
		Number: 1,
		Size:   core.GridSize{Rows: rows, Cols: cols},
		Lives:  lives,
		Cells:  cells,
	}
}

// recorder collects listener calls in order.
type recorder struct {
	events []string
	slides []core.BeamID
	bounce []core.BeamID
}

func (r *recorder) OnSlideStarted(id core.BeamID, dir core.Dir) {
	r.events = append(r.events, "slide:"+dir.String())
	r.slides = append(r.slides, id)
}

func (r *recorder) OnBounce(id core.BeamID, dir core.Dir) {
	r.events = append(r.events, "bounce:"+dir.String())
	r.bounce = append(r.bounce, id)
}

func (r *recorder) OnWon()   { r.events = append(r.events, "won") }
func (r *recorder) OnLost()  { r.events = append(r.events, "lost") }
func (r *recorder) OnReset() { r.events = append(r.events, "reset") }

func (r *recorder) count(event string) int {
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}
