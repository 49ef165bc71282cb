// Package config provides YAML-based configuration loading and
// difficulty management for Beams.
package config

import "github.com/vovakirdan/tui-beams/internal/games/beams/core"

// BeamsConfig contains all configuration for the game.
type BeamsConfig struct {
	Rules      RulesConfig      `yaml:"rules"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Animation  AnimationConfig  `yaml:"animation"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Storage    StorageConfig    `yaml:"storage"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// RulesConfig bounds which levels the loader accepts.
type RulesConfig struct {
	MinLives        int  `yaml:"min_lives"`
	MaxLives        int  `yaml:"max_lives"`
	RequireSolvable bool `yaml:"require_solvable"`
}

// CoreRules converts the section into loader rules.
func (r RulesConfig) CoreRules() core.Rules {
	return core.Rules{
		MinLives:        r.MinLives,
		MaxLives:        r.MaxLives,
		RequireSolvable: r.RequireSolvable,
	}
}

// GeneratorConfig defines procedural level generation.
type GeneratorConfig struct {
	EndCarriesDir bool             `yaml:"end_carries_dir"`
	MaxFails      int              `yaml:"max_fails"`
	Presets       []core.GenPreset `yaml:"presets"`
}

// ScoringConfig defines points awarded during play.
type ScoringConfig struct {
	PerBeam  int `yaml:"per_beam"`  // Awarded when a beam leaves the board
	PerHeart int `yaml:"per_heart"` // Awarded per remaining life on a win
}

// AnimationConfig defines slide and bounce timing in seconds.
type AnimationConfig struct {
	SlideCellsPerSecond float64 `yaml:"slide_cells_per_second"`
	MinSlide            float64 `yaml:"min_slide"`
	Bounce              float64 `yaml:"bounce"`
	Easing              string  `yaml:"easing"` // gween ease name, e.g. "out_quad"
}

// DifficultyConfig defines how generated levels scale as the player
// clears them.
type DifficultyConfig struct {
	Enabled      bool          `yaml:"enabled"`
	InitialLevel float64       `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	MaxAt        int           `yaml:"max_at"`        // Levels cleared at which max difficulty is reached
	Scaling      ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	DensityBoost float64 `yaml:"density_boost"` // Density added at max difficulty
	LengthBoost  int     `yaml:"length_boost"`  // Extra max beam length at max difficulty
	LivesPenalty int     `yaml:"lives_penalty"` // Lives removed at max difficulty
}

// StorageConfig selects persistence backends.
type StorageConfig struct {
	DBPath         string `yaml:"db_path"`
	RedisAddr      string `yaml:"redis_addr"` // Empty disables the shared leaderboard
	LeaderboardKey string `yaml:"leaderboard_key"`
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	HostKeyPath string `yaml:"host_key_path"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
