package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-beams/internal/games/beams/core"
)

var solveCmd = &cobra.Command{
	Use:   "solve <pack> <level>",
	Short: "Print a clearing order for a level",
	Long: `Print an order in which every beam of a level can leave the board
without a bounce. Levels are numbered from 1.

Examples:
  beams solve classic 2
  beams solve generated 15 --seed 42
  beams solve --levels ./levels any 1`,
	Args: cobra.ExactArgs(2),
	Run:  runSolve,
}

func runSolve(_ *cobra.Command, args []string) {
	number, err := strconv.Atoi(args[1])
	if err != nil || number < 1 {
		fmt.Fprintf(os.Stderr, "Error: invalid level number %q\n", args[1])
		os.Exit(1)
	}

	pack, err := openPack(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if pack.Count() > 0 && number > pack.Count() {
		fmt.Fprintf(os.Stderr, "Error: pack %q has %d levels\n", pack.ID(), pack.Count())
		os.Exit(1)
	}

	lvl, err := pack.Level(number - 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading level: %v\n", err)
		os.Exit(1)
	}

	beams, _ := core.AssembleBeams(lvl.Cells)
	order, ok := core.SolveBeams(beams, lvl.Size)

	fmt.Printf("%s - level %d %q (%dx%d, %d beams)\n", pack.Title(), lvl.Number, lvl.Name, lvl.Size.Rows, lvl.Size.Cols, len(beams))
	fmt.Println()

	for i, idx := range order {
		b := beams[idx]
		fmt.Printf("  %2d. %-10s tap %v, slides %s\n", i+1, b.Color, b.Tip().Pos(), b.Direction())
	}

	if !ok {
		fmt.Println()
		fmt.Printf("Stuck after %d of %d beams: the level cannot be cleared.\n", len(order), len(beams))
		os.Exit(1)
	}
}
