package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-beams/internal/registry"
	"github.com/vovakirdan/tui-beams/internal/storage"
)

var (
	flagScoresLevels bool
	flagScoresGlobal bool
	flagScoresLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores <pack>",
	Short: "Show high scores for a pack",
	Long: `Display the top scores for the specified level pack.

With --levels, show per-level attempts and win rates instead.
With --global, show the best score per player from the shared
leaderboard (Redis when configured, the local database otherwise).

Examples:
  beams scores classic
  beams scores classic --levels
  beams scores generated --global`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresLevels, "levels", false, "Show per-level statistics")
	scoresCmd.Flags().BoolVar(&flagScoresGlobal, "global", false, "Show the per-player leaderboard")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
}

func runScores(_ *cobra.Command, args []string) {
	packID := args[0]

	if !registry.Exists(packID) {
		fmt.Fprintf(os.Stderr, "Error: unknown pack %q\n", packID)
		fmt.Fprintln(os.Stderr, "Run 'beams list' to see available packs.")
		os.Exit(1)
	}

	title := packID
	for _, info := range registry.List() {
		if info.ID == packID {
			title = info.Title
		}
	}

	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresLevels:
		err = printLevelStats(store, packID, title)
	case flagScoresGlobal:
		err = printLeaderboard(store, packID, title)
	default:
		err = printTopScores(store, packID, title)
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

func printTopScores(store *storage.Store, packID, title string) error {
	scores, err := store.TopScores(packID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'beams play %s' to set the first high score!\n", packID)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-6s  %s\n", "Rank", "Player", "Score", "Levels", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-6s  %s\n", "----", "------", "-----", "------", "----")

	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "-"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-8d  %-6d  %s\n", i+1, player, entry.Score, entry.Levels, dateStr)
	}

	fmt.Println()
	if best, err := store.HighScore(packID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	if last, err := store.LastPlayed(packID); err == nil {
		fmt.Printf("Last played: %s\n", last.Format("2006-01-02 15:04"))
	}
	return nil
}

func printLevelStats(store *storage.Store, packID, title string) error {
	stats, err := store.PackLevelStats(packID)
	if err != nil {
		return err
	}

	fmt.Printf("Level Statistics - %s\n", title)
	fmt.Println()

	if len(stats) == 0 {
		fmt.Println("No levels played yet.")
		return nil
	}

	fmt.Printf("  %-5s  %-8s  %-5s  %-8s  %s\n", "Level", "Attempts", "Wins", "Win rate", "Avg lives")
	fmt.Printf("  %-5s  %-8s  %-5s  %-8s  %s\n", "-----", "--------", "----", "--------", "---------")
	for _, s := range stats {
		fmt.Printf("  %-5d  %-8d  %-5d  %7.0f%%  %.1f\n", s.Level, s.Attempts, s.Wins, s.WinRate()*100, s.AvgLives)
	}
	return nil
}

func printLeaderboard(store *storage.Store, packID, title string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var board storage.Leaderboard = storage.NewStoreLeaderboard(store)
	source := "local"
	if addr := appConfig.Storage.RedisAddr; addr != "" {
		client, err := storage.DialRedis(ctx, addr)
		if err != nil {
			logger.Warn("shared leaderboard unavailable, using local scores", "error", err)
		} else {
			defer client.Close()
			board = storage.NewRedisLeaderboard(client, appConfig.Storage.LeaderboardKey)
			source = addr
		}
	}

	entries, err := board.Top(ctx, packID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Leaderboard - %s (%s)\n", title, source)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %s\n", "Rank", "Player", "Best")
	fmt.Printf("  %-4s  %-16s  %s\n", "----", "------", "----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-16s  %d\n", i+1, e.Player, e.Score)
	}
	return nil
}
