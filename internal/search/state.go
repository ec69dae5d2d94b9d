package search

import "math"

// State is a coordinate plus the bookkeeping of one search run.
// States live in an Arena and refer to each other by handle.
type State struct {
	Coord

	G      float64 // Cost from start along the best known path
	F      float64 // Ordering key for informed strategies
	Action Action  // Move that reached this state from Parent
	Parent int     // Handle of the predecessor, -1 for none

	index  int // Position in the open heap, -1 when not queued
	closed bool
}

// Arena owns every state of a run and guarantees at most one state per
// coordinate. Handles are stable for the lifetime of the arena.
type Arena struct {
	states []State
	index  map[Coord]int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{index: make(map[Coord]int)}
}

// GetOrPut returns the handle of the state at c, creating it if needed.
// created reports whether the state is new.
func (a *Arena) GetOrPut(c Coord) (h int, created bool) {
	if h, ok := a.index[c]; ok {
		return h, false
	}
	h = len(a.states)
	a.states = append(a.states, State{
		Coord:  c,
		G:      math.Inf(1),
		F:      math.Inf(1),
		Action: DoNothing,
		Parent: -1,
		index:  -1,
	})
	a.index[c] = h
	return h, true
}

// Lookup returns the handle of the state at c, if it exists.
func (a *Arena) Lookup(c Coord) (int, bool) {
	h, ok := a.index[c]
	return h, ok
}

// State returns the state behind handle h. The pointer is only valid until
// the next GetOrPut.
func (a *Arena) State(h int) *State {
	return &a.states[h]
}

// SetParent records that state h was reached from parent via action.
func (a *Arena) SetParent(h, parent int, action Action) {
	a.states[h].Parent = parent
	a.states[h].Action = action
}

// Len returns the number of states discovered so far.
func (a *Arena) Len() int {
	return len(a.states)
}

// reset drops every state.
func (a *Arena) reset() {
	a.states = a.states[:0]
	clear(a.index)
}
