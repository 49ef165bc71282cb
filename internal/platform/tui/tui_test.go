package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-beams/internal/config"
	"github.com/vovakirdan/tui-beams/internal/core"
	"github.com/vovakirdan/tui-beams/internal/games/beams"
	beamscore "github.com/vovakirdan/tui-beams/internal/games/beams/core"
	"github.com/vovakirdan/tui-beams/internal/registry"
	"github.com/vovakirdan/tui-beams/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{runeKey('j'), core.ActionDown, false},
		{runeKey('h'), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionConfirm, false},
		{runeKey('?'), core.ActionHint, false},
		{runeKey('n'), core.ActionNext, false},
		{runeKey('r'), core.ActionRestart, false},
		{runeKey('p'), core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey('q'), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey('x'), core.ActionNone, false},
	}

	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
		}
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	press := tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if km.MapMouseToFrame(press, &frame) {
		t.Error("press should not register a click")
	}

	release := tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	if !km.MapMouseToFrame(release, &frame) {
		t.Error("left release should register a click")
	}
	if len(frame.Clicks) != 1 || frame.Clicks[0] != (core.Point{X: 3, Y: 4}) {
		t.Errorf("unexpected clicks %+v", frame.Clicks)
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / 60},
		{-5, time.Second / 60},
	}
	for _, tt := range tests {
		if got := tickInterval(tt.rate); got != tt.want {
			t.Errorf("tickInterval(%d) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextWithColor(0, 0, "ab", core.ColorCyan)
	s.SetHex(2, 0, '█', "#FF3131")
	s.SetHex(3, 0, '█', "#FF3131")
	s.DrawText(0, 1, "hello")

	out := RenderScreen(s, DefaultTheme())
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(out, "ab") || !strings.Contains(out, "hello") {
		t.Errorf("text missing from output %q", out)
	}
}

func TestThemeHexFallback(t *testing.T) {
	hex := styleKey{hex: "#FF3131"}

	if got := DefaultTheme().style(hex).GetForeground(); got != lipgloss.Color("#FF3131") {
		t.Errorf("default theme should keep hex colors, got %v", got)
	}
	if got := MonochromeTheme().style(hex).GetForeground(); got != lipgloss.Color("255") {
		t.Errorf("mono theme should use the fallback, got %v", got)
	}
	if ThemeByName("unknown").Name != "default" {
		t.Error("unknown theme names should fall back to default")
	}
}

// step sends one message and returns the updated model.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return nm
}

func click(g *beams.Game, p beamscore.Pos) tea.MouseMsg {
	x, y := g.ScreenPos(p)
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func TestModelRecordsLevelAndRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	cfg := config.DefaultBeamsConfig()
	pack, err := beams.NewEmbeddedPack("tutorial", "Tutorial", registry.Options{Config: cfg, Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("NewEmbeddedPack() failed: %v", err)
	}
	game := beams.New(pack, cfg)

	rec := &Recorder{Store: store, Player: "ann", Logger: log.New(io.Discard)}
	m := NewModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}, Options{
		Recorder: rec,
		Theme:    DefaultTheme(),
	})
	m.Init()

	for _, p := range []beamscore.Pos{beamscore.P(1, 0), beamscore.P(0, 0)} {
		m = step(t, m, click(game, p))
		m = step(t, m, TickMsg{})
		for i := 0; i < 300 && game.Animating(); i++ {
			m = step(t, m, TickMsg{})
		}
	}

	if game.Phase() != beams.PhaseCleared {
		t.Fatalf("expected level cleared, got phase %v", game.Phase())
	}

	stats, err := store.LevelStats("tutorial", 1)
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Attempts != 1 || stats.Wins != 1 || stats.AvgLives != 3 {
		t.Errorf("unexpected level stats %+v", stats)
	}

	m = step(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Fatal("q should quit")
	}

	scores, err := store.TopScores("tutorial", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 350 || scores[0].Player != "ann" || scores[0].Levels != 1 {
		t.Errorf("unexpected scores %+v", scores)
	}
}

func TestModelResizeKeepsProgress(t *testing.T) {
	cfg := config.DefaultBeamsConfig()
	pack, err := beams.NewEmbeddedPack("tutorial", "Tutorial", registry.Options{Config: cfg, Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("NewEmbeddedPack() failed: %v", err)
	}
	game := beams.New(pack, cfg)

	m := NewModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}, Options{Theme: DefaultTheme(), StartLevel: 1})
	m.Init()
	if game.LevelIndex() != 1 {
		t.Fatalf("expected to start at level index 1, got %d", game.LevelIndex())
	}

	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if game.LevelIndex() != 1 || game.Session().BeamCount() != 2 {
		t.Error("resize should not reset the level")
	}
	if !strings.Contains(m.View(), "In The Way") {
		t.Error("view should show the current level name")
	}
}

func TestPackLevelNames(t *testing.T) {
	cfg := config.DefaultBeamsConfig()
	pack, err := beams.NewEmbeddedPack("classic", "Classic", registry.Options{Config: cfg, Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("NewEmbeddedPack() failed: %v", err)
	}

	names := PackLevelNames(pack)
	if len(names) != 3 {
		t.Fatalf("expected 3 names, got %d", len(names))
	}
	if !strings.HasPrefix(names[0], "Crossing") {
		t.Errorf("unexpected first name %q", names[0])
	}
}

func scoreboardKey(t *testing.T, m ScoreboardModel, msg tea.KeyMsg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return sm
}

func TestScoreboardViews(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, e := range []storage.ScoreEntry{
		{PackID: "classic", Player: "ann", Score: 300, Levels: 1},
		{PackID: "classic", Player: "bob", Score: 450, Levels: 2},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	for _, r := range []storage.LevelResult{
		{PackID: "classic", Level: 1, Player: "ann", Won: true, LivesLeft: 3},
		{PackID: "classic", Level: 1, Player: "bob", Won: true, LivesLeft: 2},
		{PackID: "classic", Level: 1, Player: "bob", Won: false},
	} {
		if _, err := store.SaveLevelResult(r); err != nil {
			t.Fatalf("SaveLevelResult() failed: %v", err)
		}
	}

	rec := &Recorder{Store: store, Player: "ann", Logger: log.New(io.Discard)}
	m := NewScoreboardModel(rec, DefaultTheme(), 100, 30)

	if m.packID() != "classic" {
		t.Fatalf("expected classic first, got %q", m.packID())
	}
	if view := m.View(); !strings.Contains(view, "bob") || !strings.Contains(view, "450") {
		t.Errorf("runs view should list bob's 450:\n%s", view)
	}

	m = scoreboardKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.CurrentView() != ViewLevels {
		t.Fatalf("tab should switch to levels, got %v", m.CurrentView())
	}
	if view := m.View(); !strings.Contains(view, "67%") {
		t.Errorf("levels view should show a 67%% win rate:\n%s", view)
	}

	m = scoreboardKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.CurrentView() != ViewPlayers {
		t.Fatalf("tab should switch to players, got %v", m.CurrentView())
	}
	if view := m.View(); !strings.Contains(view, "ann is ranked #2") {
		t.Errorf("players view should show ann's rank:\n%s", view)
	}

	m = scoreboardKey(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.packID() == "classic" {
		t.Fatal("right should move to the next pack")
	}
	if view := m.View(); !strings.Contains(view, "No scores recorded yet") {
		t.Errorf("unplayed pack should show the empty message:\n%s", view)
	}

	m = scoreboardKey(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.CurrentView() != ViewLevels {
		t.Errorf("shift+tab should go back to levels, got %v", m.CurrentView())
	}

	m = scoreboardKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back without quitting")
	}
}
