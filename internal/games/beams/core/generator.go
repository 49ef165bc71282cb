package core

import (
	"errors"
	"fmt"
	"math/rand"
)

// GenParams configures the level generator.
type GenParams struct {
	Number  int
	Rows    int
	Cols    int
	Density float64 // Target share of occupied cells (0-1)
	MinLen  int     // Shortest beam, at least 2
	MaxLen  int
	Lives   int
	Seed    int64

	// EndCarriesDir writes the exit direction on End cells. When false the
	// End cell stores "none" and the direction lives on the cell before it.
	EndCarriesDir bool

	MaxFails int // Consecutive failed placements before giving up
}

// GenPreset is a named generator configuration.
type GenPreset struct {
	Number  int     `yaml:"number"`
	Rows    int     `yaml:"rows"`
	Cols    int     `yaml:"cols"`
	Density float64 `yaml:"density"`
	MinLen  int     `yaml:"min_len"`
	MaxLen  int     `yaml:"max_len"`
	Lives   int     `yaml:"lives"`
}

// Params converts the preset into generator parameters.
func (p GenPreset) Params(seed int64) GenParams {
	return GenParams{
		Number:        p.Number,
		Rows:          p.Rows,
		Cols:          p.Cols,
		Density:       p.Density,
		MinLen:        p.MinLen,
		MaxLen:        p.MaxLen,
		Lives:         p.Lives,
		Seed:          seed,
		EndCarriesDir: true,
		MaxFails:      1000,
	}
}

// DefaultPresets returns the built-in level ladder.
func DefaultPresets() []GenPreset {
	return []GenPreset{
		{Number: 1, Rows: 8, Cols: 8, Density: 0.50, MinLen: 3, MaxLen: 6, Lives: 3},
		{Number: 2, Rows: 10, Cols: 10, Density: 0.55, MinLen: 4, MaxLen: 8, Lives: 3},
		{Number: 3, Rows: 15, Cols: 15, Density: 0.60, MinLen: 4, MaxLen: 12, Lives: 4},
		{Number: 4, Rows: 20, Cols: 20, Density: 0.65, MinLen: 5, MaxLen: 15, Lives: 4},
		{Number: 5, Rows: 25, Cols: 25, Density: 0.65, MinLen: 6, MaxLen: 18, Lives: 5},
		{Number: 6, Rows: 30, Cols: 30, Density: 0.70, MinLen: 6, MaxLen: 20, Lives: 5},
	}
}

// ErrBadParams is returned for generator parameters that cannot work.
var ErrBadParams = errors.New("core: invalid generator parameters")

// entry is an edge cell together with the off-board node in front of it.
type entry struct {
	start   Pos
	virtual Pos
}

type generator struct {
	p        GenParams
	size     GridSize
	rng      *rand.Rand
	occupied map[Pos]bool
	reserved map[Pos]bool
	colors   map[string]bool
	beams    [][]Cell
}

// Generate builds a level by sliding beams in from the board edges.
//
// Each beam is a random walk that starts at an edge cell; its head sits
// where the walk is straight, so it points back out of the board. The
// straight exit lane of every placed beam is reserved, which means a beam
// can only be blocked by beams placed before it and the level can always be
// cleared in placement order.
func Generate(p GenParams) (Level, error) {
	if p.Rows <= 0 || p.Cols <= 0 || p.MinLen < 2 || p.MaxLen < p.MinLen {
		return Level{}, fmt.Errorf("%w: rows=%d cols=%d len=[%d,%d]",
			ErrBadParams, p.Rows, p.Cols, p.MinLen, p.MaxLen)
	}
	if p.MaxFails <= 0 {
		p.MaxFails = 1000
	}

	g := &generator{
		p:        p,
		size:     GridSize{Rows: p.Rows, Cols: p.Cols},
		rng:      rand.New(rand.NewSource(p.Seed)),
		occupied: make(map[Pos]bool),
		reserved: make(map[Pos]bool),
		colors:   make(map[string]bool),
	}

	target := int(float64(p.Rows*p.Cols) * p.Density)
	fails := 0
	for len(g.occupied) < target && fails < p.MaxFails {
		if g.placeBeam() {
			fails = 0
		} else {
			fails++
		}
	}

	g.rng.Shuffle(len(g.beams), func(i, j int) {
		g.beams[i], g.beams[j] = g.beams[j], g.beams[i]
	})

	cells := make([]Cell, 0, p.Rows*p.Cols)
	for _, b := range g.beams {
		cells = append(cells, b...)
	}
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			if !g.occupied[P(r, c)] {
				cells = append(cells, Cell{Row: r, Col: c, Role: RoleEmpty})
			}
		}
	}

	return Level{
		Number: p.Number,
		Name:   fmt.Sprintf("Generated %dx%d #%d", p.Rows, p.Cols, p.Number),
		Size:   g.size,
		Lives:  p.Lives,
		Cells:  cells,
	}, nil
}

func (g *generator) entries() []entry {
	rows, cols := g.p.Rows, g.p.Cols
	out := make([]entry, 0, 2*(rows+cols))
	for c := 0; c < cols; c++ {
		out = append(out,
			entry{start: P(0, c), virtual: P(-1, c)},
			entry{start: P(rows-1, c), virtual: P(rows, c)},
		)
	}
	for r := 0; r < rows; r++ {
		out = append(out,
			entry{start: P(r, 0), virtual: P(r, -1)},
			entry{start: P(r, cols-1), virtual: P(r, cols)},
		)
	}
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func (g *generator) free(p Pos) bool {
	return g.size.InBounds(p) && !g.occupied[p] && !g.reserved[p]
}

// placeBeam tries every edge entry once and places at most one beam.
func (g *generator) placeBeam() bool {
	for _, e := range g.entries() {
		if !g.free(e.start) {
			continue
		}

		path := g.walk(e)
		if len(path)-1 < g.p.MinLen {
			continue
		}

		length := g.p.MinLen + g.rng.Intn(min(len(path)-1, g.p.MaxLen)-g.p.MinLen+1)
		head, ok := g.pickHead(path, length)
		if !ok {
			continue
		}

		body := path[head : head+length]
		lane := g.lane(body[0], DirBetween(body[1], body[0]))
		if intersects(lane, body) {
			continue
		}

		g.commit(body, lane)
		return true
	}
	return false
}

// walk performs a self-avoiding random walk inward from an entry.
func (g *generator) walk(e entry) []Pos {
	path := []Pos{e.virtual, e.start}
	onPath := map[Pos]bool{e.virtual: true, e.start: true}
	current := e.start
	steps := g.p.MaxLen + 2 + g.rng.Intn(9)

	for i := 0; i < steps; i++ {
		var next []Pos
		for _, d := range []Dir{DirRight, DirLeft, DirDown, DirUp} {
			n := current.Step(d)
			if g.free(n) && !onPath[n] {
				next = append(next, n)
			}
		}
		if len(next) == 0 {
			break
		}
		current = next[g.rng.Intn(len(next))]
		path = append(path, current)
		onPath[current] = true
	}
	return path
}

// pickHead returns the deepest index whose neighbors on the path are
// collinear with it, so the head points straight back along the walk.
func (g *generator) pickHead(path []Pos, length int) (int, bool) {
	limit := len(path) - length
	head := -1
	for i := 1; i <= limit && i+1 < len(path); i++ {
		if collinear(path[i-1], path[i], path[i+1]) {
			head = i
		}
	}
	return head, head >= 0
}

// lane returns the straight exit trajectory from the head.
func (g *generator) lane(head Pos, dir Dir) []Pos {
	var out []Pos
	for p := head.Step(dir); g.size.InBounds(p); p = p.Step(dir) {
		out = append(out, p)
	}
	return out
}

// commit records a beam. body runs head first, inward.
func (g *generator) commit(body, lane []Pos) {
	color := g.color()
	n := len(body)
	cells := make([]Cell, n)

	// Stored tail first: cells[i] is body[n-1-i].
	for i := 0; i < n; i++ {
		pos := body[n-1-i]
		c := Cell{Row: pos.Row, Col: pos.Col, Role: RolePath, Color: color}
		switch {
		case i == 0:
			c.Role = RoleStart
		case i == n-1:
			c.Role = RoleEnd
		}
		if i < n-1 {
			c.Dir = DirBetween(pos, body[n-2-i])
		} else if g.p.EndCarriesDir {
			c.Dir = DirBetween(body[1], pos)
		}
		cells[i] = c
		g.occupied[pos] = true
	}

	for _, p := range lane {
		if !g.occupied[p] {
			g.reserved[p] = true
		}
	}
	g.beams = append(g.beams, cells)
}

// color returns an unused saturated hex color.
func (g *generator) color() string {
	for {
		r := 50 + g.rng.Intn(206)
		gr := 50 + g.rng.Intn(206)
		b := 50 + g.rng.Intn(206)
		switch x := g.rng.Float64(); {
		case x < 0.33:
			r = 255
		case x < 0.66:
			gr = 255
		default:
			b = 255
		}
		c := fmt.Sprintf("#%02X%02X%02X", r, gr, b)
		if !g.colors[c] {
			g.colors[c] = true
			return c
		}
	}
}

func collinear(a, b, c Pos) bool {
	return (a.Row == b.Row && b.Row == c.Row) || (a.Col == b.Col && b.Col == c.Col)
}

func intersects(a, b []Pos) bool {
	set := make(map[Pos]bool, len(b))
	for _, p := range b {
		set[p] = true
	}
	for _, p := range a {
		if set[p] {
			return true
		}
	}
	return false
}
