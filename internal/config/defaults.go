package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-beams/internal/games/beams/core"
)

//go:embed defaults/beams.yaml
var defaultBeamsYAML []byte

// DefaultBeamsConfig returns the default configuration.
func DefaultBeamsConfig() BeamsConfig {
	return BeamsConfig{
		Rules: RulesConfig{
			MinLives: 3,
			MaxLives: 5,
		},
		Generator: GeneratorConfig{
			EndCarriesDir: true,
			MaxFails:      1000,
			Presets:       core.DefaultPresets(),
		},
		Scoring: ScoringConfig{
			PerBeam:  100,
			PerHeart: 50,
		},
		Animation: AnimationConfig{
			SlideCellsPerSecond: 40,
			MinSlide:            0.15,
			Bounce:              0.25,
			Easing:              "in_quad",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			MaxAt:        10,
			Scaling: ScalingConfig{
				DensityBoost: 0.15,
				LengthBoost:  4,
				LivesPenalty: 1,
			},
		},
		Storage: StorageConfig{
			DBPath:         "~/.beams/scores.db",
			LeaderboardKey: "beams:leaderboard",
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        23234,
			HostKeyPath: ".ssh/beams_ed25519",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
