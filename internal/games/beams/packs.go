package beams

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-beams/internal/config"
	"github.com/vovakirdan/tui-beams/internal/games/beams/core"
	"github.com/vovakirdan/tui-beams/internal/games/beams/levels"
	"github.com/vovakirdan/tui-beams/internal/registry"
)

func init() {
	registry.Register("classic", "Classic", func(opts registry.Options) (registry.Pack, error) {
		return NewEmbeddedPack("classic", "Classic", opts)
	})
	registry.Register("tutorial", "Tutorial", func(opts registry.Options) (registry.Pack, error) {
		return NewEmbeddedPack("tutorial", "Tutorial", opts)
	})
	registry.Register("generated", "Generated", func(opts registry.Options) (registry.Pack, error) {
		return NewGeneratedPack(opts), nil
	})
}

// StaticPack is a fixed, pre-loaded list of levels.
type StaticPack struct {
	id     string
	title  string
	levels []core.Level
}

// NewStaticPack wraps already loaded levels.
func NewStaticPack(id, title string, lvls []core.Level) *StaticPack {
	return &StaticPack{id: id, title: title, levels: lvls}
}

// NewEmbeddedPack loads one of the bundled level packs.
func NewEmbeddedPack(id, title string, opts registry.Options) (*StaticPack, error) {
	loader, err := levels.NewEmbeddedLoader(id)
	if err != nil {
		return nil, err
	}
	return loadPack(loader, id, title, opts)
}

// NewDirPack loads every level file below dir.
func NewDirPack(dir string, opts registry.Options) (*StaticPack, error) {
	return loadPack(levels.NewLoader(dir), "dir", dir, opts)
}

func loadPack(loader *levels.Loader, id, title string, opts registry.Options) (*StaticPack, error) {
	loader.Rules = opts.Config.Rules.CoreRules()
	loader.Logger = packLogger(opts)

	lvls, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(lvls) == 0 {
		return nil, fmt.Errorf("pack %s: no playable levels", title)
	}
	return NewStaticPack(id, title, lvls), nil
}

func (p *StaticPack) ID() string    { return p.id }
func (p *StaticPack) Title() string { return p.title }
func (p *StaticPack) Count() int    { return len(p.levels) }

// Level returns the level at index.
func (p *StaticPack) Level(index int) (core.Level, error) {
	if index < 0 || index >= len(p.levels) {
		return core.Level{}, fmt.Errorf("%w: index %d of %d", levels.ErrNotFound, index, len(p.levels))
	}
	return p.levels[index], nil
}

// GeneratedPack produces an endless run of procedural levels.
// Level i uses preset min(i, last) and gets harder as i grows.
type GeneratedPack struct {
	gen        config.GeneratorConfig
	rules      core.Rules
	difficulty *config.DifficultyManager
	seed       int64
}

// NewGeneratedPack creates a generated pack from configuration.
func NewGeneratedPack(opts registry.Options) *GeneratedPack {
	gen := opts.Config.Generator
	if len(gen.Presets) == 0 {
		gen.Presets = core.DefaultPresets()
	}
	return &GeneratedPack{
		gen:        gen,
		rules:      opts.Config.Rules.CoreRules(),
		difficulty: config.NewDifficultyManager(opts.Config.Difficulty),
		seed:       opts.Seed,
	}
}

func (p *GeneratedPack) ID() string    { return "generated" }
func (p *GeneratedPack) Title() string { return "Generated" }
func (p *GeneratedPack) Count() int    { return 0 }

// Params returns the generator parameters used for level index.
func (p *GeneratedPack) Params(index int) core.GenParams {
	preset := p.gen.Presets[min(index, len(p.gen.Presets)-1)]

	params := preset.Params(p.seed + int64(index))
	params.Number = index + 1
	params.EndCarriesDir = p.gen.EndCarriesDir
	if p.gen.MaxFails > 0 {
		params.MaxFails = p.gen.MaxFails
	}

	params = p.difficulty.Scale(params, index, p.rules.MinLives)
	if p.rules.MaxLives > 0 && params.Lives > p.rules.MaxLives {
		params.Lives = p.rules.MaxLives
	}
	return params
}

// Level generates the level at index. The same seed and index always
// produce the same level.
func (p *GeneratedPack) Level(index int) (core.Level, error) {
	if index < 0 {
		return core.Level{}, fmt.Errorf("%w: index %d", levels.ErrNotFound, index)
	}
	return core.Generate(p.Params(index))
}

func packLogger(opts registry.Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger.WithPrefix("levels")
	}
	return log.Default()
}
