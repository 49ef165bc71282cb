// Package beams provides the Beams sliding puzzle for the terminal platform.
package beams

import (
	platformcore "github.com/vovakirdan/tui-beams/internal/core"
	"github.com/vovakirdan/tui-beams/internal/config"
	"github.com/vovakirdan/tui-beams/internal/games/beams/core"
	"github.com/vovakirdan/tui-beams/internal/registry"
)

// Phase is where the player is within a run.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseCleared       // Level won, waiting for Next
	PhaseFailed        // Out of lives, waiting for Restart
	PhaseComplete      // Every level of a finite pack cleared
	PhaseBroken        // Level could not be loaded
)

// Game adapts a core.Session to the platform Game interface.
type Game struct {
	pack registry.Pack
	cfg  config.BeamsConfig

	session    *core.Session
	levelIndex int
	cleared    int
	score      int
	levelScore int // Score when the current level started
	phase      Phase
	paused     bool
	loadErr    error

	cursor    core.Pos
	hint      core.BeamID
	hintTicks int

	slides  map[core.BeamID]*slide
	bounces map[core.BeamID]*bounce
	events  []platformcore.Event

	tickRate int
	screenW  int
	screenH  int
	layout   layout
}

// New creates a game playing the given pack.
func New(pack registry.Pack, cfg config.BeamsConfig) *Game {
	return &Game{
		pack:    pack,
		cfg:     cfg,
		slides:  make(map[core.BeamID]*slide),
		bounces: make(map[core.BeamID]*bounce),
	}
}

// ID returns the pack identifier, used as the score storage key.
func (g *Game) ID() string {
	return g.pack.ID()
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Beams: " + g.pack.Title()
}

// Reset starts the run from the first level.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.levelIndex = 0
	g.cleared = 0
	g.score = 0
	g.paused = false
	g.events = nil

	g.loadLevel()
}

// StartAt jumps to a zero-based level index, keeping the score.
func (g *Game) StartAt(index int) {
	if index < 0 {
		index = 0
	}
	g.levelIndex = index
	g.loadLevel()
}

// Resize recomputes the layout for new screen dimensions.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.session != nil {
		g.layout = computeLayout(g.session.Level().Size, w, h)
	}
}

func (g *Game) loadLevel() {
	if n := g.pack.Count(); n > 0 && g.levelIndex >= n {
		g.phase = PhaseComplete
		return
	}

	level, err := g.pack.Level(g.levelIndex)
	if err != nil {
		g.phase = PhaseBroken
		g.loadErr = err
		return
	}
	g.loadErr = nil

	if g.session == nil {
		g.session = core.NewSession(level)
		g.session.Subscribe(core.ListenerFuncs{
			SlideStarted: g.onSlideStarted,
			Bounce:       g.onBounce,
			Won:          g.onWon,
			Lost:         g.onLost,
			Reset:        g.onReset,
		})
		g.onReset()
	} else {
		g.session.LoadLevel(level)
	}

	g.layout = computeLayout(level.Size, g.screenW, g.screenH)
	g.cursor = core.P(level.Size.Rows/2, level.Size.Cols/2)
	if b := g.session.Beams(); len(b) > 0 {
		g.cursor = b[0].Tip().Pos()
	}
}

// Listener callbacks. They run synchronously inside session calls.

func (g *Game) onSlideStarted(id core.BeamID, dir core.Dir) {
	for _, b := range g.session.Beams() {
		if b.ID == id {
			g.slides[id] = newSlide(b, dir, g.session.Level().Size, g.cfg.Animation)
			break
		}
	}
	if g.hint == id {
		g.hint = ""
	}
	g.emit(platformcore.EventSlide)
}

func (g *Game) onBounce(id core.BeamID, dir core.Dir) {
	g.bounces[id] = newBounce(id, dir, g.cfg.Animation)
	g.emit(platformcore.EventBounce)
}

func (g *Game) onWon() {
	g.score += g.cfg.Scoring.PerHeart * g.session.Lives()
	g.cleared++
	g.phase = PhaseCleared
	g.emit(platformcore.EventLevelCleared)
}

func (g *Game) onLost() {
	g.phase = PhaseFailed
	g.emit(platformcore.EventLevelFailed)
}

func (g *Game) onReset() {
	clear(g.slides)
	clear(g.bounces)
	g.hint = ""
	g.hintTicks = 0
	g.phase = PhasePlaying
	g.levelScore = g.score
}

func (g *Game) emit(kind platformcore.EventKind) {
	g.events = append(g.events, platformcore.Event{
		Kind:  kind,
		Level: g.session.Level().Number,
		Lives: g.session.Lives(),
	})
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if in.Has(platformcore.ActionPause) && g.phase == PhasePlaying {
		g.paused = !g.paused
	}

	if !g.paused && g.session != nil {
		g.handleInput(in)
		g.animate(1 / float32(g.tickRate))
	}

	events := g.events
	g.events = nil
	return platformcore.StepResult{State: g.State(), Events: events}
}

func (g *Game) handleInput(in platformcore.InputFrame) {
	switch g.phase {
	case PhaseCleared:
		if in.Has(platformcore.ActionNext) || in.Has(platformcore.ActionConfirm) {
			g.levelIndex++
			g.loadLevel()
		} else if in.Has(platformcore.ActionRestart) {
			g.score = g.levelScore
			g.cleared--
			g.session.ResetLevel()
		}
		return

	case PhaseFailed:
		if in.Has(platformcore.ActionRestart) {
			g.score = g.levelScore
			g.session.ResetLevel()
		}
		return

	case PhaseComplete, PhaseBroken:
		return
	}

	if in.Has(platformcore.ActionRestart) {
		g.score = g.levelScore
		g.session.ResetLevel()
		return
	}

	size := g.session.Level().Size
	move := func(dr, dc int) {
		g.cursor.Row = platformcore.Clamp(g.cursor.Row+dr, 0, size.Rows-1)
		g.cursor.Col = platformcore.Clamp(g.cursor.Col+dc, 0, size.Cols-1)
	}
	if in.Has(platformcore.ActionUp) {
		move(-1, 0)
	}
	if in.Has(platformcore.ActionDown) {
		move(1, 0)
	}
	if in.Has(platformcore.ActionLeft) {
		move(0, -1)
	}
	if in.Has(platformcore.ActionRight) {
		move(0, 1)
	}

	if in.Has(platformcore.ActionHint) {
		if b := g.session.Hint(); b != nil {
			g.hint = b.ID
			g.hintTicks = g.tickRate * 2
			g.cursor = b.Tip().Pos()
		}
	}

	if in.Has(platformcore.ActionConfirm) {
		g.tap(g.cursor)
	}

	for _, c := range in.Clicks {
		if g.phase != PhasePlaying {
			break
		}
		if p, ok := g.CellAt(c.X, c.Y); ok {
			g.cursor = p
			g.tap(p)
		}
	}
}

func (g *Game) tap(p core.Pos) {
	g.session.TapAt(p.Row, p.Col)
}

// animate advances tweens and finishes slides whose beam has left the board.
func (g *Game) animate(dt float32) {
	for id, s := range g.slides {
		if s.update(dt) {
			delete(g.slides, id)
			// A slide can finish after the level was lost; it scores nothing then.
			if g.session.CompleteSlide(id) && (g.phase == PhasePlaying || g.phase == PhaseCleared) {
				g.score += g.cfg.Scoring.PerBeam
			}
		}
	}

	for id, b := range g.bounces {
		if b.update(dt) {
			delete(g.bounces, id)
		}
	}

	if g.hintTicks > 0 {
		g.hintTicks--
		if g.hintTicks == 0 {
			g.hint = ""
		}
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.score,
		Level:    g.cleared,
		GameOver: g.phase == PhaseFailed || g.phase == PhaseComplete || g.phase == PhaseBroken,
		Won:      g.phase == PhaseComplete,
		Paused:   g.paused,
	}
}

// Phase returns the current run phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Session exposes the underlying level session.
func (g *Game) Session() *core.Session {
	return g.session
}

// Cursor returns the cell under the keyboard cursor.
func (g *Game) Cursor() core.Pos {
	return g.cursor
}

// LevelIndex returns the zero-based index of the current level.
func (g *Game) LevelIndex() int {
	return g.levelIndex
}

// Animating reports whether any beam is still moving.
func (g *Game) Animating() bool {
	return len(g.slides) > 0 || len(g.bounces) > 0
}

// Err returns the level loading error, if any.
func (g *Game) Err() error {
	return g.loadErr
}

// Pack returns the pack being played.
func (g *Game) Pack() registry.Pack {
	return g.pack
}
