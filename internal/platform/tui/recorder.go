package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-beams/internal/core"
	"github.com/vovakirdan/tui-beams/internal/storage"
)

// Recorder persists level results and finished runs. Every field is
// optional; a nil Recorder records nothing.
type Recorder struct {
	Store  *storage.Store
	Board  storage.Leaderboard
	Player string
	Logger *log.Logger
}

func (r *Recorder) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

// LevelEvent stores the outcome of a won or lost level.
// Other events are only logged.
func (r *Recorder) LevelEvent(packID string, e core.Event) {
	if r == nil {
		return
	}

	switch e.Kind {
	case core.EventLevelCleared, core.EventLevelFailed:
	default:
		r.logger().Debug("beam event", "pack", packID, "level", e.Level, "kind", e.Kind, "lives", e.Lives)
		return
	}

	won := e.Kind == core.EventLevelCleared
	r.logger().Info("level finished", "pack", packID, "level", e.Level, "won", won, "lives", e.Lives, "player", r.Player)

	if r.Store == nil {
		return
	}
	_, err := r.Store.SaveLevelResult(storage.LevelResult{
		PackID:    packID,
		Level:     e.Level,
		Player:    r.Player,
		Won:       won,
		LivesLeft: e.Lives,
	})
	if err != nil {
		r.logger().Warn("could not save level result", "error", err)
	}
}

// RunFinished stores the score of a finished run. Zero scores are skipped.
func (r *Recorder) RunFinished(packID string, st core.GameState) {
	if r == nil || st.Score <= 0 {
		return
	}
	r.logger().Info("run finished", "pack", packID, "score", st.Score, "levels", st.Level, "player", r.Player)

	if r.Store != nil {
		_, err := r.Store.SaveScore(storage.ScoreEntry{
			PackID: packID,
			Player: r.Player,
			Score:  st.Score,
			Levels: st.Level,
		})
		if err != nil {
			r.logger().Warn("could not save score", "error", err)
		}
	}

	if r.Board != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := r.Board.Submit(ctx, packID, r.Player, st.Score); err != nil {
			r.logger().Warn("could not submit to leaderboard", "error", err)
		}
	}
}
