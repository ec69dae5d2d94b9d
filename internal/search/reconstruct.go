package search

import "fmt"

// Path is the route from start to goal.
type Path struct {
	// Actions are the moves in start to goal order.
	Actions []Action
	// Cells are the coordinates entered by each action; the start is excluded.
	Cells []Coord
}

// Len returns the number of actions.
func (p *Path) Len() int {
	return len(p.Actions)
}

// Cost sums the entry cost of every cell on the path.
func (p *Path) Cost(w World) int {
	total := 0
	for _, c := range p.Cells {
		total += w.Cost(c.Row, c.Col)
	}
	return total
}

// Reconstruct walks predecessor links from goal back to start and returns
// the actions in start to goal order. The walk is bounded by the number of
// states in the arena; a chain that is longer, or that ends anywhere other
// than start, yields ErrCorruptChain.
func Reconstruct(a *Arena, goal int, start Coord) (*Path, error) {
	if goal < 0 || goal >= a.Len() {
		return nil, fmt.Errorf("%w: goal handle %d out of range", ErrCorruptChain, goal)
	}

	var (
		actions []Action
		cells   []Coord
	)
	h := goal
	for hops := 0; ; hops++ {
		if hops > a.Len() {
			return nil, fmt.Errorf("%w: more than %d hops", ErrCorruptChain, a.Len())
		}
		st := a.State(h)
		if st.Coord == start {
			break
		}
		if st.Parent < 0 {
			return nil, fmt.Errorf("%w: chain ends at %s", ErrCorruptChain, st.Coord)
		}
		actions = append(actions, st.Action)
		cells = append(cells, st.Coord)
		h = st.Parent
	}

	// Reverse (it's built from goal to start)
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
		cells[i], cells[j] = cells[j], cells[i]
	}

	return &Path{Actions: actions, Cells: cells}, nil
}
