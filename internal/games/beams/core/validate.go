package core

import "fmt"

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Rules bound what a loadable level may contain.
type Rules struct {
	MinLives        int
	MaxLives        int
	RequireSolvable bool
}

// DefaultRules returns the standard level rules.
func DefaultRules() Rules {
	return Rules{MinLives: 3, MaxLives: 5}
}

// ValidateLevel checks a level against the rules.
// Checks:
//   - Board dimensions are positive
//   - Lives lie within the configured range
//   - Every cell is on the board
//   - At least one beam exists
//   - Optionally, the level can be cleared
//
// Malformed beams are reported by AssembleBeams as diagnostics, not here.
func ValidateLevel(l Level, r Rules) error {
	if l.Size.Rows <= 0 || l.Size.Cols <= 0 {
		return ValidationError{
			Code:    "INVALID_SIZE",
			Message: fmt.Sprintf("grid %dx%d must have positive dimensions", l.Size.Rows, l.Size.Cols),
		}
	}

	if l.Lives < r.MinLives || (r.MaxLives > 0 && l.Lives > r.MaxLives) {
		return ValidationError{
			Code:    "INVALID_LIVES",
			Message: fmt.Sprintf("lives %d outside [%d,%d]", l.Lives, r.MinLives, r.MaxLives),
		}
	}

	for _, c := range l.Cells {
		if !l.Size.InBounds(c.Pos()) {
			return ValidationError{
				Code:    "OUT_OF_BOUNDS",
				Message: fmt.Sprintf("cell %v outside %dx%d grid", c.Pos(), l.Size.Rows, l.Size.Cols),
			}
		}
	}

	if len(l.Colors()) == 0 {
		return ValidationError{
			Code:    "NO_BEAMS",
			Message: "level has no beams",
		}
	}

	if r.RequireSolvable {
		if _, ok := Solve(l); !ok {
			return ValidationError{
				Code:    "NOT_SOLVABLE",
				Message: "no beam order clears the board",
			}
		}
	}

	return nil
}

// LevelStats summarizes a level.
type LevelStats struct {
	Rows        int
	Cols        int
	Beams       int
	FilledCells int
	MinBeamLen  int
	MaxBeamLen  int
	FillRatio   float64
	Solvable    bool
}

// ComputeLevelStats analyzes a level.
func ComputeLevelStats(l Level) LevelStats {
	beams, _ := AssembleBeams(l.Cells)
	_, solvable := Solve(l)

	stats := LevelStats{
		Rows:       l.Size.Rows,
		Cols:       l.Size.Cols,
		Beams:      len(beams),
		MinBeamLen: -1,
		Solvable:   solvable,
	}

	for _, b := range beams {
		stats.FilledCells += b.Len()
		if stats.MinBeamLen < 0 || b.Len() < stats.MinBeamLen {
			stats.MinBeamLen = b.Len()
		}
		if b.Len() > stats.MaxBeamLen {
			stats.MaxBeamLen = b.Len()
		}
	}
	if stats.MinBeamLen < 0 {
		stats.MinBeamLen = 0
	}

	if total := l.Size.Rows * l.Size.Cols; total > 0 {
		stats.FillRatio = float64(stats.FilledCells) / float64(total)
	}

	return stats
}
