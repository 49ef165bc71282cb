package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-beams/internal/games/beams/core"
)

func TestSolveFindsOrder(t *testing.T) {
	lvl := blockedLevel(3)

	order, ok := core.Solve(lvl)
	if !ok {
		t.Fatal("expected level to be solvable")
	}
	// blue (index 1) must leave before red (index 0).
	if len(order) != 2 || order[0] != 1 || order[1] != 0 {
		t.Errorf("expected order [1 0], got %v", order)
	}
}

func TestSolveDetectsDeadlock(t *testing.T) {
	// Two beams pointing at each other's bodies.
	lvl := level(3, 4, 3,
		chain("red", core.DirRight, core.P(1, 0), core.P(1, 1)),
		chain("blue", core.DirLeft, core.P(1, 3), core.P(1, 2)),
	)

	if _, ok := core.Solve(lvl); ok {
		t.Error("facing beams should be unsolvable")
	}
}

func TestSolveRejectsSelfBlockedBeam(t *testing.T) {
	lvl := level(5, 5, 3, chain("red", core.DirUp, core.P(0, 0), core.P(0, 1), core.P(1, 1)))

	if _, ok := core.Solve(lvl); ok {
		t.Error("self-blocked beam can never leave")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := core.DefaultPresets()[0].Params(42)

	a, err := core.Generate(p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, _ := core.Generate(p)

	if len(a.Cells) != len(b.Cells) {
		t.Fatalf("cell counts differ: %d vs %d", len(a.Cells), len(b.Cells))
	}
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Fatalf("cell %d differs: %+v vs %+v", i, a.Cells[i], b.Cells[i])
		}
	}
}

func TestGenerateProducesSolvableLevels(t *testing.T) {
	for _, preset := range core.DefaultPresets()[:4] {
		for seed := int64(1); seed <= 5; seed++ {
			lvl, err := core.Generate(preset.Params(seed))
			if err != nil {
				t.Fatalf("preset %d seed %d: %v", preset.Number, seed, err)
			}

			if len(lvl.Colors()) == 0 {
				t.Errorf("preset %d seed %d: no beams placed", preset.Number, seed)
			}
			if _, ok := core.Solve(lvl); !ok {
				t.Errorf("preset %d seed %d: generated level is not solvable", preset.Number, seed)
			}
			if len(lvl.Cells) != preset.Rows*preset.Cols {
				t.Errorf("preset %d seed %d: expected %d cells, got %d",
					preset.Number, seed, preset.Rows*preset.Cols, len(lvl.Cells))
			}
		}
	}
}

func TestGenerateBeamsAreWellFormed(t *testing.T) {
	lvl, err := core.Generate(core.DefaultPresets()[2].Params(3))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	beams, diags := core.AssembleBeams(lvl.Cells)
	if len(diags) != 0 {
		t.Errorf("generated level should assemble cleanly, got %v", diags)
	}
	for _, b := range beams {
		if b.Len() < 4 || b.Len() > 12 {
			t.Errorf("beam length %d outside [4,12]", b.Len())
		}
		if b.Cells[0].Role != core.RoleStart || b.Tip().Role != core.RoleEnd {
			t.Errorf("beam %s should run start to end", b.Color)
		}
		if b.Direction() == core.DirNone {
			t.Errorf("beam %s has no direction", b.Color)
		}
	}
}

func TestGenerateEndDirectionSchemas(t *testing.T) {
	p := core.DefaultPresets()[0].Params(9)

	p.EndCarriesDir = false
	bare, _ := core.Generate(p)
	p.EndCarriesDir = true
	carried, _ := core.Generate(p)

	for i, c := range bare.Cells {
		if c.Role == core.RoleEnd && c.Dir != core.DirNone {
			t.Errorf("cell %d: end should carry none", i)
		}
	}

	// Both schemas resolve to the same beam directions.
	a, _ := core.AssembleBeams(bare.Cells)
	b, _ := core.AssembleBeams(carried.Cells)
	for i := range a {
		if a[i].Direction() != b[i].Direction() {
			t.Errorf("beam %d: direction %v vs %v", i, a[i].Direction(), b[i].Direction())
		}
	}
}

func TestGenerateRejectsBadParams(t *testing.T) {
	_, err := core.Generate(core.GenParams{Rows: 0, Cols: 5, MinLen: 2, MaxLen: 4})
	if !errors.Is(err, core.ErrBadParams) {
		t.Errorf("expected ErrBadParams, got %v", err)
	}
}
