package core

// SlidingPath returns the in-bounds cells the beam would cross when leaving
// the board, starting next to the tip. The result is empty when the beam has
// no resolvable direction.
func SlidingPath(b *Beam, size GridSize) []Pos {
	dir := b.Direction()
	if dir == DirNone {
		return nil
	}

	maxSteps := size.Rows + size.Cols + 1
	path := make([]Pos, 0, maxSteps)
	pos := b.Tip().Pos()

	for step := 0; step < maxSteps; step++ {
		pos = pos.Step(dir)
		if !size.InBounds(pos) {
			break
		}
		path = append(path, pos)
	}

	return path
}

// WillCollide reports whether the sliding path of b crosses a cell occupied
// by any beam in all. The moving beam counts too: a bent beam can block its
// own exit lane.
func WillCollide(b *Beam, all []*Beam, size GridSize) bool {
	_, _, hit := Blocker(b, all, size)
	return hit
}

// Blocker returns the first beam met along the sliding path of b and the
// position where it is met.
func Blocker(b *Beam, all []*Beam, size GridSize) (*Beam, Pos, bool) {
	path := SlidingPath(b, size)
	if len(path) == 0 {
		return nil, Pos{}, false
	}

	occupied := occupancy(all)
	for _, p := range path {
		if other, ok := occupied[p]; ok {
			return other, p, true
		}
	}
	return nil, Pos{}, false
}

// occupancy maps every occupied position to its owner. The first beam in
// list order keeps a contested position.
func occupancy(beams []*Beam) map[Pos]*Beam {
	occupied := make(map[Pos]*Beam)
	for _, b := range beams {
		for _, c := range b.Cells {
			if _, taken := occupied[c.Pos()]; !taken {
				occupied[c.Pos()] = b
			}
		}
	}
	return occupied
}
