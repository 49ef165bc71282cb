package levels_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-beams/internal/games/beams/core"
	"github.com/vovakirdan/tui-beams/internal/games/beams/levels"
)

func quietLoader(l *levels.Loader) *levels.Loader {
	l.Logger = log.New(io.Discard)
	return l
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	full := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestLoadAllSortsAndSkipsInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", "number: 2\nname: Second\nlives: 3\nboard:\n  - \"r> r> ..\"\n")
	writeFile(t, dir, "nested/a.yml", "number: 1\nname: First\nlives: 3\nboard:\n  - \"r> ..\"\n")
	writeFile(t, dir, "broken.yaml", "number: [")
	writeFile(t, dir, "lives.yaml", "number: 3\nname: Greedy\nlives: 9\nboard:\n  - \"r> ..\"\n")
	writeFile(t, dir, "notes.txt", "ignored")

	loader := quietLoader(levels.NewLoader(dir))
	got, err := loader.LoadAll()
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].Name)
	assert.Equal(t, "Second", got[1].Name)
}

func TestLoadAllMissingDir(t *testing.T) {
	loader := quietLoader(levels.NewLoader(filepath.Join(t.TempDir(), "missing")))
	_, err := loader.LoadAll()
	assert.Error(t, err)
}

func TestLoadFileRejectsAllInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.json", `{"levels":[{"levelNumber":1,"gridSize":{"rows":0,"columns":3},"difficulty":3,"cells":[]}]}`)

	loader := quietLoader(levels.NewLoader(dir))
	_, err := loader.LoadFile("empty.json")
	require.Error(t, err)

	var verr core.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "INVALID_SIZE", verr.Code)
}

func TestRulesConfigureLivesRange(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.yaml", "number: 1\nname: Hard\nlives: 1\nboard:\n  - \"r> ..\"\n")

	loader := quietLoader(levels.NewLoader(dir))
	got, err := loader.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, got)

	loader.Rules.MinLives = 1
	got, err = loader.LoadAll()
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestLoadByNumber(t *testing.T) {
	loader, err := levels.NewEmbeddedLoader("tutorial")
	require.NoError(t, err)
	quietLoader(loader)

	lvl, err := loader.LoadByNumber(2)
	require.NoError(t, err)
	assert.Equal(t, "In The Way", lvl.Name)

	_, err = loader.LoadByNumber(99)
	assert.ErrorIs(t, err, levels.ErrNotFound)
}

func TestEmbeddedPacksAreSolvable(t *testing.T) {
	packs := levels.EmbeddedPacks()
	assert.Equal(t, []string{"classic", "tutorial"}, packs)

	for _, pack := range packs {
		t.Run(pack, func(t *testing.T) {
			loader, err := levels.NewEmbeddedLoader(pack)
			require.NoError(t, err)
			quietLoader(loader)
			loader.Rules.RequireSolvable = true

			got, err := loader.LoadAll()
			require.NoError(t, err)
			assert.Len(t, got, 3)

			for _, lvl := range got {
				_, diags := core.AssembleBeams(lvl.Cells)
				assert.Empty(t, diags, "level %d", lvl.Number)
			}
		})
	}
}

func TestClassicPackMixesEndSchemas(t *testing.T) {
	loader, err := levels.NewEmbeddedLoader("classic")
	require.NoError(t, err)
	quietLoader(loader)

	lvl, err := loader.LoadByNumber(2)
	require.NoError(t, err)

	s := core.NewSession(lvl)
	yellow := s.BeamAt(0, 0)
	require.NotNil(t, yellow)
	assert.Equal(t, core.DirNone, yellow.Tip().Dir)
	assert.Equal(t, core.DirRight, yellow.Direction())
	assert.Equal(t, core.TapBounce, s.TapAt(0, 0).Outcome)
}

func TestUnknownEmbeddedPack(t *testing.T) {
	_, err := levels.NewEmbeddedLoader("nope")
	assert.Error(t, err)
}
