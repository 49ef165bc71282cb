package core

import (
	"fmt"

	"github.com/google/uuid"
)

// BeamID is an opaque beam identifier, unique per assembly.
type BeamID string

// Beam is an ordered chain of same-colored cells, from start to tip.
type Beam struct {
	ID      BeamID
	Color   string
	Cells   []Cell // Never empty; last element is the tip
	Sliding bool   // Set while an accepted slide is being animated
}

// Tip returns the last cell of the beam.
func (b *Beam) Tip() Cell {
	return b.Cells[len(b.Cells)-1]
}

// Len returns the number of cells in the beam.
func (b *Beam) Len() int {
	return len(b.Cells)
}

// Direction resolves the slide direction of the beam.
// The tip direction wins; an End tip without one falls back to the
// direction of the cell before it.
func (b *Beam) Direction() Dir {
	if d := b.Tip().Dir; d != DirNone {
		return d
	}
	if len(b.Cells) >= 2 {
		return b.Cells[len(b.Cells)-2].Dir
	}
	return DirNone
}

// Occupies reports whether one of the beam cells sits at p.
func (b *Beam) Occupies(p Pos) bool {
	for _, c := range b.Cells {
		if c.Row == p.Row && c.Col == p.Col {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the beam.
func (b *Beam) Clone() *Beam {
	cells := make([]Cell, len(b.Cells))
	copy(cells, b.Cells)
	return &Beam{
		ID:      b.ID,
		Color:   b.Color,
		Cells:   cells,
		Sliding: b.Sliding,
	}
}

// CloneBeams deep-copies a beam list.
func CloneBeams(beams []*Beam) []*Beam {
	out := make([]*Beam, len(beams))
	for i, b := range beams {
		out[i] = b.Clone()
	}
	return out
}

// Diagnostic codes reported by AssembleBeams.
const (
	DiagNoStart  = "NO_START"
	DiagCycle    = "CYCLE"
	DiagUnlinked = "UNLINKED"
)

// Diagnostic is a data-quality note about level cells. Diagnostics never
// prevent a level from loading.
type Diagnostic struct {
	Code    string
	Color   string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Code, d.Color, d.Message)
}

// colorGroup holds the cells of one color in first-seen order.
type colorGroup struct {
	color string
	cells []Cell
	at    map[Pos]Cell
}

// AssembleBeams groups colored cells into beams by following direction
// links. Every color present produces exactly one beam, in the order the
// color first appears in cells.
func AssembleBeams(cells []Cell) ([]*Beam, []Diagnostic) {
	groups := groupByColor(cells)
	beams := make([]*Beam, 0, len(groups))
	diags := make([]Diagnostic, 0)

	for _, g := range groups {
		chain, groupDiags := walkGroup(g)
		diags = append(diags, groupDiags...)
		beams = append(beams, &Beam{
			ID:    BeamID(uuid.NewString()),
			Color: g.color,
			Cells: chain,
		})
	}

	return beams, diags
}

// groupByColor partitions non-empty cells by color tag.
func groupByColor(cells []Cell) []*colorGroup {
	index := make(map[string]*colorGroup)
	groups := make([]*colorGroup, 0)

	for _, c := range cells {
		if c.IsEmpty() {
			continue
		}
		g, ok := index[c.Color]
		if !ok {
			g = &colorGroup{color: c.Color, at: make(map[Pos]Cell)}
			index[c.Color] = g
			groups = append(groups, g)
		}
		g.cells = append(g.cells, c)
		if _, dup := g.at[c.Pos()]; !dup {
			g.at[c.Pos()] = c
		}
	}

	return groups
}

// walkGroup follows the chain of one color group from its seed cell.
func walkGroup(g *colorGroup) ([]Cell, []Diagnostic) {
	var diags []Diagnostic

	seed, found := g.cells[0], false
	for _, c := range g.cells {
		if c.Role == RoleStart {
			seed, found = c, true
			break
		}
	}
	if !found {
		diags = append(diags, Diagnostic{
			Code:    DiagNoStart,
			Color:   g.color,
			Message: fmt.Sprintf("no start cell, seeding from %v", seed.Pos()),
		})
	}

	chain := []Cell{seed}
	visited := map[Pos]bool{seed.Pos(): true}
	current := seed

	for current.Role != RoleEnd && current.Dir != DirNone {
		next, ok := g.at[current.Pos().Step(current.Dir)]
		if !ok {
			break
		}
		if visited[next.Pos()] {
			diags = append(diags, Diagnostic{
				Code:    DiagCycle,
				Color:   g.color,
				Message: fmt.Sprintf("chain loops back to %v", next.Pos()),
			})
			break
		}
		visited[next.Pos()] = true
		chain = append(chain, next)
		current = next
	}

	if len(visited) < len(g.at) {
		diags = append(diags, Diagnostic{
			Code:    DiagUnlinked,
			Color:   g.color,
			Message: fmt.Sprintf("%d cells not reachable from the start", len(g.at)-len(visited)),
		})
	}

	return chain, diags
}
