// Package core provides the rules of the Beams puzzle: beam assembly,
// slide collision and the level state machine.
// This package is UI-agnostic and deterministic apart from beam IDs.
package core

import (
	"fmt"
	"strings"
)

// Dir is the direction a cell points to its successor, or a beam slides.
type Dir uint8

const (
	DirNone Dir = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// String returns the lower-case name used in level files.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Delta returns the (dRow, dCol) offset for one step in this direction.
// Up decreases the row, Down increases it.
func (d Dir) Delta() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction. None stays None.
func (d Dir) Opposite() Dir {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// ParseDir converts a level-file direction. Unknown values map to DirNone.
func ParseDir(s string) Dir {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp
	case "down", "d":
		return DirDown
	case "left", "l":
		return DirLeft
	case "right", "r":
		return DirRight
	default:
		return DirNone
	}
}

// DirBetween returns the direction of a single orthogonal step from a to b,
// or DirNone if b is not adjacent to a.
func DirBetween(a, b Pos) Dir {
	switch {
	case b.Row == a.Row-1 && b.Col == a.Col:
		return DirUp
	case b.Row == a.Row+1 && b.Col == a.Col:
		return DirDown
	case b.Row == a.Row && b.Col == a.Col-1:
		return DirLeft
	case b.Row == a.Row && b.Col == a.Col+1:
		return DirRight
	default:
		return DirNone
	}
}

// Role is the part a cell plays in its beam.
type Role uint8

const (
	RoleEmpty Role = iota
	RoleStart
	RolePath
	RoleEnd
)

// String returns the lower-case name used in level files.
func (r Role) String() string {
	switch r {
	case RoleStart:
		return "start"
	case RolePath:
		return "path"
	case RoleEnd:
		return "end"
	default:
		return "empty"
	}
}

// ParseRole converts a level-file cell type. Unknown values map to RoleEmpty.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return RoleStart
	case "path":
		return RolePath
	case "end":
		return RoleEnd
	default:
		return RoleEmpty
	}
}

// Pos is a grid position. Row grows downward, Col grows to the right.
type Pos struct {
	Row int
	Col int
}

// P is a convenience constructor for Pos.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// Step returns the position one step away in the given direction.
func (p Pos) Step(d Dir) Pos {
	dr, dc := d.Delta()
	return Pos{Row: p.Row + dr, Col: p.Col + dc}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Cell describes one grid position of a level. Cells are values and are
// never modified after construction.
type Cell struct {
	Row   int
	Col   int
	Role  Role
	Dir   Dir    // Points to the successor; End cells may carry None
	Color string // Beam color tag, empty for empty cells
}

// CellFromStrings builds a cell from level-file fields.
// Only type coercion happens here; combinations are checked during assembly.
func CellFromStrings(row, col int, typ, dir, color string) Cell {
	role := ParseRole(typ)
	if role == RoleEmpty {
		color = ""
	}
	return Cell{
		Row:   row,
		Col:   col,
		Role:  role,
		Dir:   ParseDir(dir),
		Color: strings.TrimSpace(color),
	}
}

// Pos returns the cell coordinate.
func (c Cell) Pos() Pos {
	return Pos{Row: c.Row, Col: c.Col}
}

// IsEmpty reports whether the cell belongs to no beam.
func (c Cell) IsEmpty() bool {
	return c.Role == RoleEmpty || c.Color == ""
}

// GridSize is the board dimension of a level.
type GridSize struct {
	Rows int
	Cols int
}

// InBounds reports whether p lies on the board.
func (g GridSize) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.Rows && p.Col >= 0 && p.Col < g.Cols
}

// Level is a parsed level. It is treated as immutable once loaded.
type Level struct {
	Number int
	Name   string
	Size   GridSize
	Lives  int
	Cells  []Cell
}

// CellAt returns the first cell at p. Later duplicates are ignored.
func (l *Level) CellAt(p Pos) (Cell, bool) {
	for _, c := range l.Cells {
		if c.Row == p.Row && c.Col == p.Col {
			return c, true
		}
	}
	return Cell{}, false
}

// Colors returns the distinct non-empty color tags in first-seen order.
func (l *Level) Colors() []string {
	seen := make(map[string]bool)
	colors := make([]string, 0)
	for _, c := range l.Cells {
		if c.IsEmpty() || seen[c.Color] {
			continue
		}
		seen[c.Color] = true
		colors = append(colors, c.Color)
	}
	return colors
}
