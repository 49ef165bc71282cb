package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.beams/config.yaml -> ./configs/beams.yaml -> embedded default.
// Files are decoded over the defaults, so partial files only override what they set.
func Load(customPath string) (BeamsConfig, error) {
	cfg := DefaultBeamsConfig()
	if err := yaml.Unmarshal(defaultBeamsYAML, &cfg); err != nil {
		cfg = DefaultBeamsConfig() // Fallback to hardcoded if embed fails
	}

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then local configs directory
	for _, p := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "beams.yaml")} {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		candidate := cfg
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, candidate.Validate()
		}
	}

	return cfg, nil
}

// Validate checks values that would make the game unplayable.
func (c BeamsConfig) Validate() error {
	if c.Rules.MinLives < 1 {
		return fmt.Errorf("config: rules.min_lives must be at least 1, got %d", c.Rules.MinLives)
	}
	if c.Rules.MaxLives < c.Rules.MinLives {
		return fmt.Errorf("config: rules.max_lives %d below min_lives %d", c.Rules.MaxLives, c.Rules.MinLives)
	}
	if c.Scoring.PerBeam < 0 || c.Scoring.PerHeart < 0 {
		return fmt.Errorf("config: scoring values must not be negative")
	}
	for _, p := range c.Generator.Presets {
		if p.Rows <= 0 || p.Cols <= 0 || p.MinLen < 2 || p.MaxLen < p.MinLen {
			return fmt.Errorf("config: generator preset %d is invalid", p.Number)
		}
	}
	return nil
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *BeamsConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust scoring based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Scoring.PerHeart = cfg.Scoring.PerHeart / 2
	case DifficultyHard:
		cfg.Scoring.PerHeart = cfg.Scoring.PerHeart * 2
		cfg.Rules.RequireSolvable = true
	}
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".beams", filename)
}
