// beams is a terminal sliding-beam puzzle.
//
// Usage:
//
//	beams list                  - List level packs
//	beams play <pack>           - Play a pack
//	beams menu                  - Pick packs interactively
//	beams serve                 - Start SSH server for remote play
//	beams scores <pack>         - Show high scores for a pack
//	beams generate              - Write generated levels as JSON
//	beams validate <path>...    - Check level files
//	beams solve <pack> <level>  - Print a clearing order for a level
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for generated packs
//	--db <path>           - Set database path
//	--config <path>       - Use a custom YAML config
//	--difficulty <name>   - easy, normal, hard or fixed
//	--levels <dir>        - Play level files from a directory instead of a pack
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-beams/internal/config"
	"github.com/vovakirdan/tui-beams/internal/games/beams"
	"github.com/vovakirdan/tui-beams/internal/platform/tui"
	"github.com/vovakirdan/tui-beams/internal/registry"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagLogLevel   string
	flagTheme      string

	appConfig config.BeamsConfig
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "beams",
	Short: "Beams - slide every beam off the board",
	Long: `Beams is a terminal puzzle. Each colored beam points somewhere;
tap it and it slides off the board in that direction, unless another
beam is in the way. Bumping into a beam costs a life.

Available commands:
  list      - Show all level packs
  play      - Play a pack directly
  menu      - Interactive pack picker
  serve     - Start SSH server for remote play
  scores    - View high scores
  generate  - Generate level files
  validate  - Check level files
  solve     - Show a clearing order for a level

Examples:
  beams list
  beams play classic
  beams play generated --seed 42 --difficulty hard
  beams play --levels ./my-levels
  beams serve --ssh :2222
  beams scores classic`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for generated packs (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level files to play instead of a pack")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Color theme: default, neon, mono")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(solveCmd)
}

// setup loads configuration and builds the process logger.
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagDifficulty != "" {
		preset := config.DifficultyPreset(flagDifficulty)
		valid := []config.DifficultyPreset{config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed}
		if !slices.Contains(valid, preset) {
			return fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "beams",
	})
	appConfig = cfg
	tui.SetTheme(tui.ThemeByName(flagTheme))
	return nil
}

// fileLogger redirects logging to ~/.beams/beams.log while the terminal
// UI owns the screen. It returns a close function.
func fileLogger() func() {
	path := config.ExpandHome(filepath.Join("~", ".beams", "beams.log"))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.SetOutput(io.Discard)
		return func() {}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		logger.SetOutput(io.Discard)
		return func() {}
	}
	logger.SetOutput(f)
	return func() { f.Close() }
}

// packOptions returns the factory options for the current flags.
func packOptions() registry.Options {
	if flagSeed == 0 {
		flagSeed = time.Now().UnixNano()
		logger.Debug("using time-based seed", "seed", flagSeed)
	}
	return registry.Options{
		Config: appConfig,
		Seed:   flagSeed,
		Logger: logger,
	}
}

// openPack builds the pack to play, honouring --levels.
func openPack(id string) (registry.Pack, error) {
	if flagLevels != "" {
		return beams.NewDirPack(flagLevels, packOptions())
	}
	if !registry.Exists(id) {
		return nil, fmt.Errorf("unknown pack %q; run 'beams list' to see available packs", id)
	}
	return registry.Create(id, packOptions())
}
