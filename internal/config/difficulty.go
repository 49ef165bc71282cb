package config

import (
	"math"

	"github.com/vovakirdan/tui-beams/internal/games/beams/core"
)

// DifficultyManager scales generated levels as the player clears them.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the current difficulty level (0.0 to 1.0) after the
// given number of cleared levels.
func (d *DifficultyManager) Level(cleared int) float64 {
	if !d.cfg.Enabled {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	progress := clampF(float64(cleared)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Scale adjusts generator parameters for the current difficulty.
// Lives never drop below minLives.
func (d *DifficultyManager) Scale(p core.GenParams, cleared int, minLives int) core.GenParams {
	level := d.Level(cleared)

	p.Density = clampF(p.Density+level*d.cfg.Scaling.DensityBoost, 0.05, 0.9)
	p.MaxLen += int(level * float64(d.cfg.Scaling.LengthBoost))

	p.Lives -= int(level * float64(d.cfg.Scaling.LivesPenalty))
	if p.Lives < minLives {
		p.Lives = minLives
	}
	return p
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
