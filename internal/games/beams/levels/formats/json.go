// Package formats provides pluggable level file format parsers.
package formats

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/tui-beams/internal/games/beams/core"
)

// JSONPack is the document written by the level generator:
// a list of levels under "levels".
type JSONPack struct {
	Levels []JSONLevel `json:"levels"`
}

// JSONLevel is one level in the generator schema.
type JSONLevel struct {
	LevelNumber int          `json:"levelNumber"`
	Name        string       `json:"name,omitempty"`
	GridSize    JSONGridSize `json:"gridSize"`
	Lives       int          `json:"lives,omitempty"`
	Difficulty  int          `json:"difficulty,omitempty"` // Older files store hearts here
	Cells       []JSONCell   `json:"cells"`
}

// JSONGridSize holds board dimensions.
type JSONGridSize struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// JSONCell is a single cell. End cells may store either "none" or the
// incoming direction; both are accepted.
type JSONCell struct {
	Row       int    `json:"row"`
	Column    int    `json:"column"`
	Type      string `json:"type"`
	Direction string `json:"direction"`
	Color     string `json:"color"`
}

// ParseJSON parses either a level pack or a single level document.
func ParseJSON(data []byte) ([]core.Level, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("json: empty document")
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	if _, ok := top["levels"]; ok {
		var pack JSONPack
		if err := json.Unmarshal(trimmed, &pack); err != nil {
			return nil, fmt.Errorf("json unmarshal pack: %w", err)
		}
		levels := make([]core.Level, 0, len(pack.Levels))
		for _, jl := range pack.Levels {
			levels = append(levels, jl.ToLevel())
		}
		return levels, nil
	}

	var jl JSONLevel
	if err := json.Unmarshal(trimmed, &jl); err != nil {
		return nil, fmt.Errorf("json unmarshal level: %w", err)
	}
	return []core.Level{jl.ToLevel()}, nil
}

// ToLevel converts the document into a core level.
func (jl JSONLevel) ToLevel() core.Level {
	lives := jl.Lives
	if lives == 0 {
		lives = jl.Difficulty
	}

	cells := make([]core.Cell, 0, len(jl.Cells))
	for _, c := range jl.Cells {
		cells = append(cells, core.CellFromStrings(c.Row, c.Column, c.Type, c.Direction, c.Color))
	}

	name := jl.Name
	if name == "" {
		name = fmt.Sprintf("Level %d", jl.LevelNumber)
	}

	return core.Level{
		Number: jl.LevelNumber,
		Name:   name,
		Size:   core.GridSize{Rows: jl.GridSize.Rows, Cols: jl.GridSize.Columns},
		Lives:  lives,
		Cells:  cells,
	}
}

// FromLevel converts a core level back into the generator schema.
func FromLevel(l core.Level) JSONLevel {
	cells := make([]JSONCell, 0, len(l.Cells))
	for _, c := range l.Cells {
		cells = append(cells, JSONCell{
			Row:       c.Row,
			Column:    c.Col,
			Type:      c.Role.String(),
			Direction: c.Dir.String(),
			Color:     c.Color,
		})
	}
	return JSONLevel{
		LevelNumber: l.Number,
		Name:        l.Name,
		GridSize:    JSONGridSize{Rows: l.Size.Rows, Columns: l.Size.Cols},
		Lives:       l.Lives,
		Cells:       cells,
	}
}

// MarshalPack encodes levels as an indented level pack.
func MarshalPack(levels []core.Level) ([]byte, error) {
	pack := JSONPack{Levels: make([]JSONLevel, 0, len(levels))}
	for _, l := range levels {
		pack.Levels = append(pack.Levels, FromLevel(l))
	}
	return json.MarshalIndent(pack, "", "  ")
}
