package beams_test

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformcore "github.com/vovakirdan/tui-beams/internal/core"
	"github.com/vovakirdan/tui-beams/internal/config"
	"github.com/vovakirdan/tui-beams/internal/games/beams"
	"github.com/vovakirdan/tui-beams/internal/games/beams/core"
	"github.com/vovakirdan/tui-beams/internal/registry"
)

func options() registry.Options {
	return registry.Options{
		Config: config.DefaultBeamsConfig(),
		Seed:   1,
		Logger: log.New(io.Discard),
	}
}

func newTutorialGame(t *testing.T) *beams.Game {
	t.Helper()
	pack, err := beams.NewEmbeddedPack("tutorial", "Tutorial", options())
	require.NoError(t, err)

	g := beams.New(pack, config.DefaultBeamsConfig())
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	return g
}

func frame(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// settle steps until every animation has finished and returns all events.
func settle(t *testing.T, g *beams.Game) []platformcore.Event {
	t.Helper()
	var events []platformcore.Event
	for i := 0; i < 600 && g.Animating(); i++ {
		events = append(events, g.Step(frame()).Events...)
	}
	require.False(t, g.Animating(), "animations should finish")
	return events
}

func kinds(events []platformcore.Event) []platformcore.EventKind {
	out := make([]platformcore.EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestGameClearsFirstTutorialLevel(t *testing.T) {
	g := newTutorialGame(t)
	require.Equal(t, beams.PhasePlaying, g.Phase())
	assert.Equal(t, "tutorial", g.ID())

	// Click the red beam on row 1.
	x, y := g.ScreenPos(core.P(1, 0))
	in := frame()
	in.Click(x, y)
	res := g.Step(in)
	require.Equal(t, []platformcore.EventKind{platformcore.EventSlide}, kinds(res.Events))
	assert.True(t, g.Animating())

	settle(t, g)
	assert.Equal(t, 100, g.State().Score)
	assert.Equal(t, 1, g.Session().BeamCount())

	// Keyboard tap on the blue beam above.
	g.Step(frame(platformcore.ActionUp))
	assert.Equal(t, core.P(0, 0), g.Cursor())
	g.Step(frame(platformcore.ActionConfirm))

	events := settle(t, g)
	assert.Contains(t, kinds(events), platformcore.EventLevelCleared)
	assert.Equal(t, beams.PhaseCleared, g.Phase())

	state := g.State()
	assert.Equal(t, 100+100+3*50, state.Score)
	assert.Equal(t, 1, state.Level)
	assert.False(t, state.GameOver)

	g.Step(frame(platformcore.ActionNext))
	assert.Equal(t, beams.PhasePlaying, g.Phase())
	assert.Equal(t, 1, g.LevelIndex())
	assert.Equal(t, "In The Way", g.Session().Level().Name)
}

func TestGameBounceAndRetry(t *testing.T) {
	g := newTutorialGame(t)
	g.StartAt(1)

	x, y := g.ScreenPos(core.P(1, 0))
	for i := 0; i < 3; i++ {
		in := frame()
		in.Click(x, y)
		res := g.Step(in)
		assert.Contains(t, kinds(res.Events), platformcore.EventBounce)
	}

	assert.Equal(t, beams.PhaseFailed, g.Phase())
	assert.True(t, g.State().GameOver)
	assert.Equal(t, 0, g.Session().Lives())

	g.Step(frame(platformcore.ActionRestart))
	assert.Equal(t, beams.PhasePlaying, g.Phase())
	assert.Equal(t, 3, g.Session().Lives())
	assert.False(t, g.State().GameOver)
}

func TestGameSlideFinishingAfterLossScoresNothing(t *testing.T) {
	g := newTutorialGame(t)
	g.StartAt(1)

	in := frame()
	bx, by := g.ScreenPos(core.P(1, 3))
	in.Click(bx, by)
	res := g.Step(in)
	require.Contains(t, kinds(res.Events), platformcore.EventSlide)

	rx, ry := g.ScreenPos(core.P(1, 0))
	for i := 0; i < 3; i++ {
		in := frame()
		in.Click(rx, ry)
		g.Step(in)
	}
	require.Equal(t, beams.PhaseFailed, g.Phase())
	require.True(t, g.Animating(), "blue should still be sliding")

	settle(t, g)
	assert.Equal(t, beams.PhaseFailed, g.Phase())
	assert.Equal(t, 0, g.State().Score)
	assert.Equal(t, 0, g.State().Level)
}

func TestGameHintMovesCursor(t *testing.T) {
	g := newTutorialGame(t)
	g.StartAt(1)

	g.Step(frame(platformcore.ActionHint))
	assert.Equal(t, core.P(1, 3), g.Cursor(), "cursor should jump to the blue tip")

	g.Step(frame(platformcore.ActionConfirm))
	assert.True(t, g.Animating())
}

func TestGameRestartRevertsLevelScore(t *testing.T) {
	g := newTutorialGame(t)

	g.Step(frame(platformcore.ActionDown, platformcore.ActionConfirm))
	settle(t, g)
	require.Equal(t, 100, g.State().Score)

	g.Step(frame(platformcore.ActionRestart))
	assert.Equal(t, 0, g.State().Score)
	assert.Equal(t, 2, g.Session().BeamCount())
}

func TestGamePauseBlocksInput(t *testing.T) {
	g := newTutorialGame(t)

	g.Step(frame(platformcore.ActionPause))
	require.True(t, g.State().Paused)

	g.Step(frame(platformcore.ActionConfirm))
	assert.False(t, g.Animating(), "taps are ignored while paused")

	g.Step(frame(platformcore.ActionPause))
	assert.False(t, g.State().Paused)
}

func TestGameCompletesFinitePack(t *testing.T) {
	lvl := core.Level{
		Number: 1,
		Name:   "One",
		Size:   core.GridSize{Rows: 2, Cols: 2},
		Lives:  3,
		Cells: []core.Cell{
			{Row: 0, Col: 0, Role: core.RoleStart, Dir: core.DirRight, Color: "#FFFFFF"},
			{Row: 0, Col: 1, Role: core.RoleEnd, Dir: core.DirRight, Color: "#FFFFFF"},
		},
	}
	g := beams.New(beams.NewStaticPack("one", "One", []core.Level{lvl}), config.DefaultBeamsConfig())
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30})

	g.Step(frame(platformcore.ActionConfirm))
	settle(t, g)
	require.Equal(t, beams.PhaseCleared, g.Phase())

	g.Step(frame(platformcore.ActionNext))
	assert.Equal(t, beams.PhaseComplete, g.Phase())
	state := g.State()
	assert.True(t, state.GameOver)
	assert.True(t, state.Won)
}

func TestGameCellAt(t *testing.T) {
	g := newTutorialGame(t)

	for _, p := range []core.Pos{core.P(0, 0), core.P(2, 2), core.P(1, 1)} {
		x, y := g.ScreenPos(p)
		got, ok := g.CellAt(x+1, y)
		require.True(t, ok)
		assert.Equal(t, p, got)
	}

	_, ok := g.CellAt(0, 0)
	assert.False(t, ok)
}

func TestGameRender(t *testing.T) {
	g := newTutorialGame(t)
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	assert.Contains(t, screen.Row(0), "BEAMS")
	assert.Contains(t, screen.Row(0), "First Light")

	x, y := g.ScreenPos(core.P(1, 0))
	assert.Equal(t, "#FF3131", screen.GetCell(x, y).Hex)

	x, y = g.ScreenPos(core.P(1, 2))
	assert.Equal(t, '▶', screen.GetCell(x+1, y).Rune, "tip shows the exit arrow")
}

func TestGameRenderTooSmall(t *testing.T) {
	pack, err := beams.NewEmbeddedPack("classic", "Classic", options())
	require.NoError(t, err)

	g := beams.New(pack, config.DefaultBeamsConfig())
	g.Reset(platformcore.RuntimeConfig{ScreenW: 12, ScreenH: 6, TickRate: 60})

	screen := platformcore.NewScreen(12, 6)
	g.Render(screen)
	assert.True(t, strings.Contains(screen.String(), "too"))

	_, ok := g.CellAt(6, 3)
	assert.False(t, ok)
}

func TestGeneratedPack(t *testing.T) {
	pack := beams.NewGeneratedPack(options())
	assert.Equal(t, 0, pack.Count())

	a, err := pack.Level(0)
	require.NoError(t, err)
	b, err := pack.Level(0)
	require.NoError(t, err)
	assert.Equal(t, a.Cells, b.Cells)
	assert.Equal(t, 1, a.Number)

	rules := config.DefaultBeamsConfig().Rules
	for i := 0; i < 12; i++ {
		p := pack.Params(i)
		assert.GreaterOrEqual(t, p.Lives, rules.MinLives)
		assert.LessOrEqual(t, p.Lives, rules.MaxLives)
	}

	_, err = pack.Level(-1)
	assert.Error(t, err)
}

func TestRegisteredPacks(t *testing.T) {
	for _, id := range []string{"classic", "tutorial", "generated"} {
		assert.True(t, registry.Exists(id), id)
	}

	p, err := registry.Create("classic", options())
	require.NoError(t, err)
	assert.Equal(t, 3, p.Count())
}

func TestEasingFallback(t *testing.T) {
	assert.NotNil(t, beams.Easing("out_bounce"))
	assert.NotNil(t, beams.Easing("nope"))
}
