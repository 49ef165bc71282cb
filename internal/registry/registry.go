// Package registry provides a global registry for level pack factories.
// Packs register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-beams/internal/config"
	"github.com/vovakirdan/tui-beams/internal/games/beams/core"
)

// Pack is an ordered source of levels.
type Pack interface {
	// ID returns a unique identifier (e.g., "classic", "generated").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Count returns the number of levels, or 0 for an endless pack.
	Count() int

	// Level returns the level at a zero-based index.
	Level(index int) (core.Level, error)
}

// Options carries what a factory needs to build a pack.
type Options struct {
	Config config.BeamsConfig
	Seed   int64
	Logger *log.Logger
}

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	ID    string
	Title string
}

// Factory creates a pack instance.
type Factory func(opts Options) (Pack, error)

type entry struct {
	title   string
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a pack factory to the registry.
// Typically called from an init() function.
// Panics if a pack with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: pack %q already registered", id))
	}

	entries[id] = entry{title: title, factory: f}
}

// List returns information about all registered packs, sorted by ID.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, PackInfo{
			ID:    id,
			Title: e.title,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a pack by its ID.
// Returns an error if the pack ID is not registered or fails to build.
func Create(id string, opts Options) (Pack, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown pack %q", id)
	}

	p, err := e.factory(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: pack %q: %w", id, err)
	}
	return p, nil
}

// Exists checks if a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
