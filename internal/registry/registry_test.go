package registry

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-beams/internal/games/beams/core"
)

type fakePack struct{ levels []core.Level }

func (p fakePack) ID() string    { return "fake" }
func (p fakePack) Title() string { return "Fake" }
func (p fakePack) Count() int    { return len(p.levels) }

func (p fakePack) Level(i int) (core.Level, error) {
	if i < 0 || i >= len(p.levels) {
		return core.Level{}, fmt.Errorf("index %d out of range", i)
	}
	return p.levels[i], nil
}

func TestRegisterAndCreate(t *testing.T) {
	Register("test-fake", "Fake", func(Options) (Pack, error) {
		return fakePack{levels: []core.Level{{Number: 1}}}, nil
	})

	assert.True(t, Exists("test-fake"))
	assert.Contains(t, List(), PackInfo{ID: "test-fake", Title: "Fake"})

	p, err := Create("test-fake", Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, p.Count())
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test-dup", "Dup", func(Options) (Pack, error) { return fakePack{}, nil })

	assert.Panics(t, func() {
		Register("test-dup", "Dup", func(Options) (Pack, error) { return fakePack{}, nil })
	})
}

func TestCreateErrors(t *testing.T) {
	_, err := Create("test-missing", Options{})
	assert.Error(t, err)

	boom := errors.New("boom")
	Register("test-broken", "Broken", func(Options) (Pack, error) { return nil, boom })

	_, err = Create("test-broken", Options{})
	assert.ErrorIs(t, err, boom)
}

func TestListSorted(t *testing.T) {
	Register("test-zz", "Z", func(Options) (Pack, error) { return fakePack{}, nil })
	Register("test-aa", "A", func(Options) (Pack, error) { return fakePack{}, nil })

	list := List()
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
}
