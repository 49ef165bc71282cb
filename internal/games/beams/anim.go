package beams

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/tui-beams/internal/config"
	"github.com/vovakirdan/tui-beams/internal/games/beams/core"
)

// easings maps config names to gween easing functions.
var easings = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"in_quad":     ease.InQuad,
	"out_quad":    ease.OutQuad,
	"in_out_quad": ease.InOutQuad,
	"in_cubic":    ease.InCubic,
	"out_cubic":   ease.OutCubic,
	"in_expo":     ease.InExpo,
	"out_bounce":  ease.OutBounce,
}

// Easing returns the easing function for name, falling back to in_quad.
func Easing(name string) ease.TweenFunc {
	if fn, ok := easings[name]; ok {
		return fn
	}
	return ease.InQuad
}

// slide animates a beam leaving the board. Offset is measured in cells
// along dir; once the tween finishes the beam has fully left.
type slide struct {
	id     core.BeamID
	dir    core.Dir
	tween  *gween.Tween
	offset float32
}

func newSlide(b *core.Beam, dir core.Dir, size core.GridSize, cfg config.AnimationConfig) *slide {
	distance := float32(len(core.SlidingPath(b, size)) + b.Len())

	duration := float32(cfg.MinSlide)
	if cfg.SlideCellsPerSecond > 0 {
		if d := distance / float32(cfg.SlideCellsPerSecond); d > duration {
			duration = d
		}
	}
	if duration <= 0 {
		duration = 0.01
	}

	return &slide{
		id:    b.ID,
		dir:   dir,
		tween: gween.New(0, distance, duration, Easing(cfg.Easing)),
	}
}

// update advances the animation and reports whether it finished.
func (s *slide) update(dt float32) bool {
	var done bool
	s.offset, done = s.tween.Update(dt)
	return done
}

// cells returns how many whole cells the beam has moved.
func (s *slide) cells() int {
	return int(s.offset)
}

// bounce nudges a blocked beam toward its obstacle and back.
type bounce struct {
	id     core.BeamID
	dir    core.Dir
	tween  *gween.Tween
	amount float32 // 1 at full nudge, 0 at rest
}

func newBounce(id core.BeamID, dir core.Dir, cfg config.AnimationConfig) *bounce {
	duration := float32(cfg.Bounce)
	if duration <= 0 {
		duration = 0.2
	}
	return &bounce{
		id:     id,
		dir:    dir,
		tween:  gween.New(1, 0, duration, ease.OutQuad),
		amount: 1,
	}
}

func (b *bounce) update(dt float32) bool {
	var done bool
	b.amount, done = b.tween.Update(dt)
	return done
}

// shift returns the character offset of the nudge for a cell width.
func (b *bounce) shift(cellW int) (dx, dy int) {
	if b.amount < 0.5 {
		return 0, 0
	}
	dr, dc := b.dir.Delta()
	return dc * (cellW / 2), dr
}
