// Package levels provides level loading functionality for Beams.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-beams/internal/games/beams/core"
	"github.com/vovakirdan/tui-beams/internal/games/beams/levels/formats"
)

//go:embed packs
var packsFS embed.FS

// ErrNotFound is returned when a requested level does not exist.
var ErrNotFound = errors.New("level not found")

// Loader handles loading levels from a directory tree.
type Loader struct {
	FS     fs.FS
	Root   string // Display name of the source, used in logs
	Rules  core.Rules
	Logger *log.Logger
}

// NewLoader creates a loader reading from a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{
		FS:    os.DirFS(root),
		Root:  root,
		Rules: core.DefaultRules(),
	}
}

// NewEmbeddedLoader creates a loader for a bundled pack directory
// such as "classic" or "tutorial".
func NewEmbeddedLoader(pack string) (*Loader, error) {
	sub, err := fs.Sub(packsFS, path.Join("packs", pack))
	if err != nil {
		return nil, fmt.Errorf("embedded pack %s: %w", pack, err)
	}
	if _, err := fs.Stat(sub, "."); err != nil {
		return nil, fmt.Errorf("embedded pack %s: %w", pack, err)
	}
	return &Loader{
		FS:    sub,
		Root:  "embedded:" + pack,
		Rules: core.DefaultRules(),
	}, nil
}

// EmbeddedPacks lists the bundled pack directories.
func EmbeddedPacks() []string {
	entries, err := fs.ReadDir(packsFS, "packs")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func (l *Loader) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.Default()
}

// LoadAll recursively scans and loads all level files.
// Unreadable files and levels failing validation are skipped with a warning.
// Returns levels sorted by number for deterministic ordering.
func (l *Loader) LoadAll() ([]core.Level, error) {
	var levels []core.Level

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if !isSupportedExtension(path.Ext(p)) {
			return nil
		}

		parsed, err := l.LoadFile(p)
		if err != nil {
			l.logger().Warn("skipping level file", "source", l.Root, "file", p, "err", err)
			return nil
		}

		levels = append(levels, parsed...)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", l.Root, err)
	}

	sort.SliceStable(levels, func(i, j int) bool {
		if levels[i].Number != levels[j].Number {
			return levels[i].Number < levels[j].Number
		}
		return levels[i].Name < levels[j].Name
	})

	return levels, nil
}

// LoadFile loads every valid level from a single file.
// A file whose levels all fail validation is an error.
func (l *Loader) LoadFile(name string) ([]core.Level, error) {
	data, err := fs.ReadFile(l.FS, name)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", name, err)
	}

	parsed, err := formats.ParseByExtension(data, path.Ext(name))
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", name, err)
	}

	valid := make([]core.Level, 0, len(parsed))
	var firstErr error
	for _, lvl := range parsed {
		if err := core.ValidateLevel(lvl, l.Rules); err != nil {
			l.logger().Warn("invalid level", "file", name, "level", lvl.Number, "err", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if _, diags := core.AssembleBeams(lvl.Cells); len(diags) > 0 {
			for _, d := range diags {
				l.logger().Debug("beam diagnostic", "file", name, "level", lvl.Number, "code", d.Code, "color", d.Color, "msg", d.Message)
			}
		}
		valid = append(valid, lvl)
	}

	if len(valid) == 0 && firstErr != nil {
		return nil, fmt.Errorf("file %s: %w", name, firstErr)
	}
	return valid, nil
}

// LoadByNumber loads a specific level by number.
func (l *Loader) LoadByNumber(n int) (core.Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return core.Level{}, err
	}

	for _, lvl := range levels {
		if lvl.Number == n {
			return lvl, nil
		}
	}

	return core.Level{}, fmt.Errorf("%w: %d", ErrNotFound, n)
}

// ListNames returns level titles in load order.
func (l *Loader) ListNames() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(levels))
	for i, lvl := range levels {
		names[i] = lvl.Name
	}
	return names, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
