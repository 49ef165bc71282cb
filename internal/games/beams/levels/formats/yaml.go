package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-beams/internal/games/beams/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
// A level is described either by an explicit cell list or by a board
// drawing; when both are present the cells come first.
type YAMLLevel struct {
	Number  int               `yaml:"number"`
	Name    string            `yaml:"name"`
	Lives   int               `yaml:"lives"`
	Size    YAMLSize          `yaml:"size"`
	Cells   []YAMLCell        `yaml:"cells,omitempty"`
	Board   []string          `yaml:"board,omitempty"`
	Palette map[string]string `yaml:"palette,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// YAMLCell represents a single cell in YAML format.
type YAMLCell struct {
	Row   int    `yaml:"row"`
	Col   int    `yaml:"col"`
	Type  string `yaml:"type"`
	Dir   string `yaml:"dir"`
	Color string `yaml:"color"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) ([]core.Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	level, err := yl.ToLevel()
	if err != nil {
		return nil, err
	}
	return []core.Level{level}, nil
}

// ToLevel converts the document into a core level.
func (yl YAMLLevel) ToLevel() (core.Level, error) {
	level := core.Level{
		Number: yl.Number,
		Name:   yl.Name,
		Lives:  yl.Lives,
		Size:   core.GridSize{Rows: yl.Size.Rows, Cols: yl.Size.Cols},
	}
	if level.Name == "" {
		level.Name = fmt.Sprintf("Level %d", yl.Number)
	}

	for _, c := range yl.Cells {
		level.Cells = append(level.Cells, core.CellFromStrings(c.Row, c.Col, c.Type, c.Dir, c.Color))
	}

	if len(yl.Board) > 0 {
		cells, size, err := ParseBoard(yl.Board, yl.Palette)
		if err != nil {
			return core.Level{}, err
		}
		level.Cells = append(level.Cells, cells...)
		if level.Size.Rows == 0 && level.Size.Cols == 0 {
			level.Size = size
		}
	}

	return level, nil
}

// ParseBoard reads a board drawing. Each row holds space separated
// tokens: ".." for an empty cell, otherwise a color key followed by a
// direction mark (^ v < >, or * for none). Roles are inferred per color:
// the cell nothing points at is the start and the last cell reached by
// following the arrows from it is the end.
func ParseBoard(rows []string, palette map[string]string) ([]core.Cell, core.GridSize, error) {
	type token struct {
		pos core.Pos
		key string
		dir core.Dir
	}

	var tokens []token
	size := core.GridSize{Rows: len(rows)}

	for r, line := range rows {
		fields := strings.Fields(line)
		if size.Cols == 0 {
			size.Cols = len(fields)
		} else if len(fields) != size.Cols {
			return nil, core.GridSize{}, fmt.Errorf("board row %d: expected %d cells, got %d", r, size.Cols, len(fields))
		}

		for c, f := range fields {
			if strings.Trim(f, ".") == "" {
				tokens = append(tokens, token{pos: core.P(r, c)})
				continue
			}
			if len(f) < 2 {
				return nil, core.GridSize{}, fmt.Errorf("board cell (%d,%d): bad token %q", r, c, f)
			}
			dir, ok := boardDir(f[len(f)-1])
			if !ok {
				return nil, core.GridSize{}, fmt.Errorf("board cell (%d,%d): bad direction in %q", r, c, f)
			}
			tokens = append(tokens, token{pos: core.P(r, c), key: f[:len(f)-1], dir: dir})
		}
	}

	// Per color: each member's direction and the members pointed at from
	// within the group.
	dirs := make(map[string]map[core.Pos]core.Dir)
	pointed := make(map[string]map[core.Pos]bool)
	var order []string
	for _, t := range tokens {
		if t.key == "" {
			continue
		}
		if dirs[t.key] == nil {
			dirs[t.key] = make(map[core.Pos]core.Dir)
			pointed[t.key] = make(map[core.Pos]bool)
			order = append(order, t.key)
		}
		dirs[t.key][t.pos] = t.dir
	}
	for _, t := range tokens {
		if t.key == "" || t.dir == core.DirNone {
			continue
		}
		if next := t.pos.Step(t.dir); hasPos(dirs[t.key], next) {
			pointed[t.key][next] = true
		}
	}

	// Walk each color from its start; the last cell reached is the end,
	// even when its arrow turns back into the group.
	roles := make(map[core.Pos]core.Role)
	for _, key := range order {
		start, found := core.Pos{}, false
		for _, t := range tokens {
			if t.key == key && !pointed[key][t.pos] {
				start, found = t.pos, true
				break
			}
		}
		if !found {
			continue
		}

		visited := map[core.Pos]bool{start: true}
		cur := start
		for {
			d := dirs[key][cur]
			next := cur.Step(d)
			if d == core.DirNone || !hasPos(dirs[key], next) || visited[next] {
				break
			}
			roles[next] = core.RolePath
			visited[next] = true
			cur = next
		}
		roles[start] = core.RoleStart
		if cur != start {
			roles[cur] = core.RoleEnd
		}
	}

	cells := make([]core.Cell, 0, len(tokens))
	for _, t := range tokens {
		if t.key == "" {
			cells = append(cells, core.Cell{Row: t.pos.Row, Col: t.pos.Col, Role: core.RoleEmpty})
			continue
		}

		role, walked := roles[t.pos]
		if !walked {
			// Off the main chain: judge the cell by its neighbours alone.
			switch {
			case !pointed[t.key][t.pos]:
				role = core.RoleStart
			case t.dir == core.DirNone || !hasPos(dirs[t.key], t.pos.Step(t.dir)):
				role = core.RoleEnd
			default:
				role = core.RolePath
			}
		}

		color := t.key
		if hex, ok := palette[t.key]; ok {
			color = hex
		}

		cells = append(cells, core.Cell{
			Row:   t.pos.Row,
			Col:   t.pos.Col,
			Role:  role,
			Dir:   t.dir,
			Color: color,
		})
	}

	return cells, size, nil
}

func hasPos(m map[core.Pos]core.Dir, p core.Pos) bool {
	_, ok := m[p]
	return ok
}

func boardDir(b byte) (core.Dir, bool) {
	switch b {
	case '^':
		return core.DirUp, true
	case 'v':
		return core.DirDown, true
	case '<':
		return core.DirLeft, true
	case '>':
		return core.DirRight, true
	case '*':
		return core.DirNone, true
	default:
		return core.DirNone, false
	}
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".json", ".yaml", ".yml"}
}

// ParseByExtension routes to the correct parser.
func ParseByExtension(data []byte, ext string) ([]core.Level, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}
