package core

import "slices"

// Status is the play state of a session.
type Status uint8

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "Playing"
	case StatusWon:
		return "Won"
	case StatusLost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// Listener receives session notifications. Calls happen synchronously
// inside the mutating Session method and must not call back into it.
type Listener interface {
	OnSlideStarted(id BeamID, dir Dir)
	OnBounce(id BeamID, dir Dir)
	OnWon()
	OnLost()
	OnReset()
}

// ListenerFuncs adapts optional functions to the Listener interface.
type ListenerFuncs struct {
	SlideStarted func(id BeamID, dir Dir)
	Bounce       func(id BeamID, dir Dir)
	Won          func()
	Lost         func()
	Reset        func()
}

func (f ListenerFuncs) OnSlideStarted(id BeamID, dir Dir) {
	if f.SlideStarted != nil {
		f.SlideStarted(id, dir)
	}
}

func (f ListenerFuncs) OnBounce(id BeamID, dir Dir) {
	if f.Bounce != nil {
		f.Bounce(id, dir)
	}
}

func (f ListenerFuncs) OnWon() {
	if f.Won != nil {
		f.Won()
	}
}

func (f ListenerFuncs) OnLost() {
	if f.Lost != nil {
		f.Lost()
	}
}

func (f ListenerFuncs) OnReset() {
	if f.Reset != nil {
		f.Reset()
	}
}

// TapOutcome classifies what a tap did.
type TapOutcome uint8

const (
	TapIgnored TapOutcome = iota // Not playing, no beam there, or beam already sliding
	TapNoMove                    // Beam has no resolvable direction
	TapBounce                    // Path blocked, a life was lost
	TapSlide                     // Path clear, beam is now sliding
)

// TapResult describes the effect of a TapAt call.
type TapResult struct {
	Outcome TapOutcome
	BeamID  BeamID
	Dir     Dir
}

// Session is the state machine of one level being played.
// A Session is owned by a single caller and is not safe for concurrent use.
type Session struct {
	level     Level
	beams     []*Beam // Active beams in assembly order
	lives     int
	status    Status
	diags     []Diagnostic
	listeners []*listenerEntry
}

type listenerEntry struct {
	l       Listener
	removed bool
}

// NewSession creates a session and loads the given level.
func NewSession(level Level) *Session {
	s := &Session{}
	s.LoadLevel(level)
	return s
}

// Subscribe registers a listener. The returned function removes it.
func (s *Session) Subscribe(l Listener) (unsubscribe func()) {
	entry := &listenerEntry{l: l}
	s.listeners = append(s.listeners, entry)
	return func() {
		entry.removed = true
		s.listeners = slices.DeleteFunc(s.listeners, func(e *listenerEntry) bool {
			return e == entry
		})
	}
}

// LoadLevel replaces the current level and resets all progress.
func (s *Session) LoadLevel(level Level) {
	s.level = level
	s.beams, s.diags = AssembleBeams(level.Cells)
	s.lives = level.Lives
	s.status = StatusPlaying
	s.emit(func(l Listener) { l.OnReset() })
}

// ResetLevel reloads the current level.
func (s *Session) ResetLevel() {
	s.LoadLevel(s.level)
}

// TapAt handles a player tap on a grid cell.
// Taps that cannot act on anything are silent no-ops.
func (s *Session) TapAt(row, col int) TapResult {
	if s.status != StatusPlaying {
		return TapResult{Outcome: TapIgnored}
	}

	beam := s.find(P(row, col))
	if beam == nil || beam.Sliding {
		return TapResult{Outcome: TapIgnored}
	}

	dir := beam.Direction()
	if dir == DirNone {
		return TapResult{Outcome: TapNoMove, BeamID: beam.ID}
	}

	if WillCollide(beam, s.beams, s.level.Size) {
		s.lives--
		if s.lives < 0 {
			s.lives = 0
		}
		s.emit(func(l Listener) { l.OnBounce(beam.ID, dir) })
		if s.lives <= 0 {
			s.status = StatusLost
			s.emit(func(l Listener) { l.OnLost() })
		}
		return TapResult{Outcome: TapBounce, BeamID: beam.ID, Dir: dir}
	}

	beam.Sliding = true
	s.emit(func(l Listener) { l.OnSlideStarted(beam.ID, dir) })
	return TapResult{Outcome: TapSlide, BeamID: beam.ID, Dir: dir}
}

// CompleteSlide removes a beam once its exit animation is over.
// It reports whether a beam was removed; unknown IDs are ignored.
func (s *Session) CompleteSlide(id BeamID) bool {
	idx := -1
	for i, b := range s.beams {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	s.beams = append(s.beams[:idx], s.beams[idx+1:]...)
	if len(s.beams) == 0 && s.status == StatusPlaying {
		s.status = StatusWon
		s.emit(func(l Listener) { l.OnWon() })
	}
	return true
}

// Hint returns a copy of the first idle beam that would leave the board
// cleanly, or nil if there is none.
func (s *Session) Hint() *Beam {
	if s.status != StatusPlaying {
		return nil
	}
	for _, b := range s.beams {
		if b.Sliding || b.Direction() == DirNone {
			continue
		}
		if !WillCollide(b, s.beams, s.level.Size) {
			return b.Clone()
		}
	}
	return nil
}

// Level returns the level being played.
func (s *Session) Level() Level {
	return s.level
}

// Beams returns a snapshot of the active beams.
func (s *Session) Beams() []*Beam {
	return CloneBeams(s.beams)
}

// BeamCount returns the number of active beams.
func (s *Session) BeamCount() int {
	return len(s.beams)
}

// BeamAt returns a copy of the beam covering (row, col), or nil.
func (s *Session) BeamAt(row, col int) *Beam {
	if b := s.find(P(row, col)); b != nil {
		return b.Clone()
	}
	return nil
}

// Lives returns the remaining lives.
func (s *Session) Lives() int {
	return s.lives
}

// Status returns the current play state.
func (s *Session) Status() Status {
	return s.status
}

// Diagnostics returns the data-quality notes from the last assembly.
func (s *Session) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)
	return out
}

// find returns the first active beam covering p.
func (s *Session) find(p Pos) *Beam {
	for _, b := range s.beams {
		if b.Occupies(p) {
			return b
		}
	}
	return nil
}

// emit notifies a snapshot of the listeners. Entries removed during the
// notification are skipped.
func (s *Session) emit(fn func(Listener)) {
	for _, e := range slices.Clone(s.listeners) {
		if !e.removed {
			fn(e.l)
		}
	}
}
