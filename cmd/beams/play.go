package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-beams/internal/core"
	"github.com/vovakirdan/tui-beams/internal/games/beams"
	"github.com/vovakirdan/tui-beams/internal/platform/tui"
	"github.com/vovakirdan/tui-beams/internal/registry"
	"github.com/vovakirdan/tui-beams/internal/storage"
)

var (
	flagStartLevel int
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play [pack]",
	Short: "Play a level pack",
	Long: `Start playing the given level pack (default: classic).

Finite packs open a level picker unless --level is given.
The generated pack is endless and gets harder as you clear levels.

Controls:
  Arrows/hjkl  - Move the cursor
  Space/Enter  - Tap the beam under the cursor
  Mouse click  - Tap a beam
  ?            - Hint
  N            - Next level (after a clear)
  R            - Restart level
  P            - Pause
  Esc          - Back
  Q/Ctrl+C     - Quit

Examples:
  beams play
  beams play tutorial
  beams play classic --level 2
  beams play generated --seed 7 --difficulty hard
  beams play --levels ./levels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStartLevel, "level", 0, "Start at this level number (1-based) and skip the picker")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name for scores (default: $USER)")
}

func runPlay(_ *cobra.Command, args []string) error {
	packID := "classic"
	if len(args) > 0 {
		packID = args[0]
	}

	pack, err := openPack(packID)
	if err != nil {
		return err
	}

	cfg := terminalConfig()

	start := flagStartLevel - 1
	if flagStartLevel <= 0 {
		start = 0
		if pack.Count() > 0 {
			sel, selErr := tui.RunLevelSelector(pack, cfg, tui.GetTheme())
			if selErr != nil {
				return selErr
			}
			if sel == nil {
				return nil // User pressed back or quit
			}
			start = sel.Index
		}
	}

	rec, closeRec := openRecorder()
	defer closeRec()
	closeLog := fileLogger()
	defer closeLog()

	_, err = playPack(pack, cfg, rec, start)
	return err
}

// playPack runs one pack until the player quits or goes back.
func playPack(pack registry.Pack, cfg core.RuntimeConfig, rec *tui.Recorder, start int) (back bool, err error) {
	logger.Info("starting pack", "pack", pack.ID(), "level", start+1, "seed", flagSeed)

	game := beams.New(pack, appConfig)
	back, err = tui.Run(game, cfg, tui.Options{
		Recorder:   rec,
		Theme:      tui.GetTheme(),
		StartLevel: start,
	})
	if err != nil {
		return false, fmt.Errorf("running game: %w", err)
	}
	return back, nil
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openRecorder opens score storage and, when configured, the shared
// leaderboard. Missing backends are logged and skipped.
func openRecorder() (*tui.Recorder, func()) {
	player := flagPlayer
	if player == "" {
		player = os.Getenv("USER")
	}

	rec := &tui.Recorder{Player: player, Logger: logger.WithPrefix("scores")}
	var closers []func()

	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
	} else {
		rec.Store = store
		closers = append(closers, func() { store.Close() })
	}

	if addr := appConfig.Storage.RedisAddr; addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		client, redisErr := storage.DialRedis(ctx, addr)
		cancel()
		if redisErr != nil {
			logger.Warn("leaderboard disabled", "error", redisErr)
		} else {
			rec.Board = storage.NewRedisLeaderboard(client, appConfig.Storage.LeaderboardKey)
			closers = append(closers, func() { client.Close() })
		}
	}

	return rec, func() {
		for _, c := range closers {
			c()
		}
	}
}
