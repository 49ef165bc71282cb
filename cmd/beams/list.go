package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-beams/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available level packs",
	Long:  `Shows every level pack bundled with Beams and how many levels it has.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	packs := registry.List()

	if len(packs) == 0 {
		fmt.Println("No level packs available.")
		return
	}

	fmt.Println("Available packs:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, p := range packs {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, "ID", "Levels", "Title")
	fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, "--", "------", "-----")

	opts := packOptions()
	for _, info := range packs {
		count := "?"
		if pack, err := registry.Create(info.ID, opts); err != nil {
			logger.Warn("cannot load pack", "pack", info.ID, "error", err)
		} else if pack.Count() == 0 {
			count = "endless"
		} else {
			count = fmt.Sprintf("%d", pack.Count())
		}
		fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, info.ID, count, info.Title)
	}

	fmt.Println()
	fmt.Println("Run 'beams play <id>' to play a pack.")
}
