package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-beams/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick level packs from an interactive menu",
	Long: `Start Beams in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a pack, Tab for
high scores. Leaving a game with Esc returns to the menu.

Examples:
  beams menu
  beams menu --theme neon
  beams menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	rec, closeRec := openRecorder()
	defer closeRec()
	closeLog := fileLogger()
	defer closeLog()

	cfg := terminalConfig()
	theme := tui.GetTheme()

	for {
		menuResult, err := tui.RunMenu(rec.Store, cfg, theme)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(rec, theme, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		pack, err := openPack(menuResult.PackID)
		if err != nil {
			logger.Error("cannot open pack", "pack", menuResult.PackID, "error", err)
			continue
		}

		start := 0
		if pack.Count() > 0 {
			sel, selErr := tui.RunLevelSelector(pack, cfg, theme)
			if selErr != nil {
				return selErr
			}
			if sel == nil {
				continue
			}
			start = sel.Index
		}

		back, err := playPack(pack, cfg, rec, start)
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
	}
}
