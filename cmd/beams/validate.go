package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-beams/internal/games/beams/core"
	"github.com/vovakirdan/tui-beams/internal/games/beams/levels/formats"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>...",
	Short: "Check level files",
	Long: `Parse and validate level files or directories of level files.

Every level must have a valid board, lives in the configured range,
at least one beam and a clearing order. Malformed beams are listed as
warnings. Exits with status 1 if any level is invalid.

Examples:
  beams validate ./levels
  beams validate pack.json extra.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	rules := appConfig.Rules.CoreRules()
	rules.RequireSolvable = true

	files, err := levelFiles(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no level files found")
		os.Exit(1)
	}

	failed := 0
	total := 0
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			fmt.Printf("FAIL  %s: %v\n", file, err)
			failed++
			continue
		}
		lvls, err := formats.ParseByExtension(data, filepath.Ext(file))
		if err != nil {
			fmt.Printf("FAIL  %s: %v\n", file, err)
			failed++
			continue
		}

		for _, lvl := range lvls {
			total++
			label := fmt.Sprintf("%s #%d %q", file, lvl.Number, lvl.Name)
			if err := core.ValidateLevel(lvl, rules); err != nil {
				fmt.Printf("FAIL  %s: %v\n", label, err)
				failed++
				continue
			}

			st := core.ComputeLevelStats(lvl)
			fmt.Printf("ok    %s: %dx%d, %d beams (len %d-%d), %.0f%% filled, %d lives\n",
				label, st.Rows, st.Cols, st.Beams, st.MinBeamLen, st.MaxBeamLen, st.FillRatio*100, lvl.Lives)

			if _, diags := core.AssembleBeams(lvl.Cells); len(diags) > 0 {
				for _, d := range diags {
					fmt.Printf("      warning: %s\n", d)
				}
			}
		}
	}

	fmt.Println()
	fmt.Printf("%d levels checked, %d failed\n", total, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// levelFiles expands directories into the level files they contain.
func levelFiles(paths []string) ([]string, error) {
	exts := formats.FormatExtensions()
	var files []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	slices.Sort(files)
	return files, nil
}
