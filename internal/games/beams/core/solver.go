package core

// Solve finds an order in which every beam of the level can leave the
// board without a bounce. Indices refer to the assembly order of the beams.
//
// Removing a beam only ever frees cells, so a beam with a clear path stays
// clear; taking the first clear beam each round is therefore complete.
func Solve(level Level) ([]int, bool) {
	beams, _ := AssembleBeams(level.Cells)
	return SolveBeams(beams, level.Size)
}

// SolveBeams is Solve over an already assembled beam list.
func SolveBeams(beams []*Beam, size GridSize) ([]int, bool) {
	remaining := make([]*Beam, len(beams))
	copy(remaining, beams)
	indexOf := make(map[*Beam]int, len(beams))
	for i, b := range beams {
		indexOf[b] = i
	}

	order := make([]int, 0, len(beams))
	for len(remaining) > 0 {
		removed := false
		for i, b := range remaining {
			if b.Direction() == DirNone || WillCollide(b, remaining, size) {
				continue
			}
			order = append(order, indexOf[b])
			remaining = append(remaining[:i], remaining[i+1:]...)
			removed = true
			break
		}
		if !removed {
			return order, false
		}
	}

	return order, true
}
