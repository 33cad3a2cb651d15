// Package guard tracks whether in-memory routine edits differ from
// persisted storage and arbitrates navigation away from the editor
// while edits are pending.
package guard

import "time"

// State of the edit buffer relative to storage.
type State int

const (
	Clean State = iota
	Dirty
)

func (s State) String() string {
	if s == Dirty {
		return "dirty"
	}
	return "clean"
}

// Resolution is the user's answer when navigation is intercepted while
// Dirty.
type Resolution int

const (
	// Discard proceeds without saving; pending edits are lost.
	Discard Resolution = iota
	// Cancel stays on the editor; edits remain pending.
	Cancel
	// SaveAndProceed saves first, then allows navigation.
	SaveAndProceed
)

// DefaultGrace is how long after a load mutations are ignored. The
// initial normalization pass re-renders the editor and would otherwise
// mark a freshly loaded routine dirty.
const DefaultGrace = 500 * time.Millisecond

// Guard is the Clean/Dirty state machine. It is driven from a single
// event loop, matching the editor's dispatch model, and is not safe for
// concurrent use.
type Guard struct {
	state    State
	loadedAt time.Time
	grace    time.Duration
	now      func() time.Time
}

// New returns a guard in the Clean state with the default grace window.
func New() *Guard {
	return &Guard{grace: DefaultGrace, now: time.Now}
}

// WithClock overrides the clock. For tests.
func (g *Guard) WithClock(now func() time.Time) *Guard {
	g.now = now
	return g
}

// WithGrace overrides the grace window.
func (g *Guard) WithGrace(d time.Duration) *Guard {
	g.grace = d
	return g
}

// Loaded marks a completed load: state resets to Clean and the grace
// window opens.
func (g *Guard) Loaded() {
	g.state = Clean
	g.loadedAt = g.now()
}

// Touch records that a mutation was applied to the in-memory routine.
// Touches within the grace window after a load are ignored.
func (g *Guard) Touch() {
	if !g.loadedAt.IsZero() && g.now().Sub(g.loadedAt) < g.grace {
		return
	}
	g.state = Dirty
}

// Saved marks a successful save: Dirty → Clean. A failed save must not
// call this — the state stays Dirty so the guard keeps intercepting.
func (g *Guard) Saved() {
	g.state = Clean
}

// State returns the current state.
func (g *Guard) State() State {
	return g.state
}

// Dirty reports whether edits are pending.
func (g *Guard) Dirty() bool {
	return g.state == Dirty
}

// Intercept reports whether a navigation-away signal must be suspended
// and put to the user. Clean navigations proceed untouched.
func (g *Guard) Intercept() bool {
	return g.state == Dirty
}

// Resolve applies the user's chosen resolution to an intercepted
// navigation. It reports whether navigation may proceed. For
// SaveAndProceed the save func runs first; if it fails, the guard stays
// Dirty, navigation is blocked, and the error is returned for the
// caller to surface.
func (g *Guard) Resolve(r Resolution, save func() error) (bool, error) {
	switch r {
	case Discard:
		// The caller abandons the in-memory routine; storage was never
		// touched, so the buffer is clean by definition.
		g.state = Clean
		return true, nil
	case SaveAndProceed:
		if save != nil {
			if err := save(); err != nil {
				return false, err
			}
		}
		g.state = Clean
		return true, nil
	default: // Cancel
		return false, nil
	}
}
