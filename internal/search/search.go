// Package search implements the route search strategies of the planner.
//
// Every strategy shares one contract: starting from a coordinate on a World,
// expand states from a frontier until the goal is taken from it or the
// frontier runs dry. Neighbors are generated in a fixed order (right, left,
// up, down) and admitted only when the world reports them traversable.
//
// Strategies:
//
//   - DFS: LIFO stack, first path found, no optimality.
//   - BFS: FIFO queue, fewest steps.
//   - AStar: f = g + h heap with cost relaxation. Least terrain cost plus
//     move count by default, least terrain cost with Options.StepCost off.
//   - RBFS: greedy best-first on f = h(n) + cost(n), without the textbook
//     backtracking bound.
//   - HillClimbing: random walk over unvisited neighbors with restarts.
//
// Every run is bounded by Options.MaxExpansions.
package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/gridplan/pkg/formats"
)

// Sentinel errors for search execution.
var (
	// ErrWorldNil is returned if a nil world is passed.
	ErrWorldNil = errors.New("search: world is nil")

	// ErrNoGoal is returned when the world has no goal tile.
	ErrNoGoal = errors.New("search: world has no goal")

	// ErrNoPath is returned when the frontier is exhausted without reaching the goal.
	ErrNoPath = errors.New("search: no path to goal")

	// ErrSearchExhausted is returned when the expansion ceiling is reached.
	ErrSearchExhausted = errors.New("search: expansion ceiling reached")

	// ErrCorruptChain is returned when predecessor links do not lead back to the start.
	ErrCorruptChain = errors.New("search: predecessor chain does not reach start")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")

	// ErrUnknownStrategy is returned for unrecognized strategy tags.
	ErrUnknownStrategy = errors.New("search: unknown strategy")
)

// World is the read-only view of the environment the engine consumes.
type World interface {
	Rows() int
	Cols() int
	Status(row, col int) formats.TileStatus
	Cost(row, col int) int
	IsTraversable(row, col int) bool
	GoalLocation() (row, col int, ok bool)
}

// Strategy selects a search routine.
type Strategy int

// Supported strategies.
const (
	DFS Strategy = iota
	BFS
	AStar
	RBFS
	HillClimbing
)

var strategyNames = map[Strategy]string{
	DFS:          "DFS",
	BFS:          "BFS",
	AStar:        "AStar",
	RBFS:         "RBFS",
	HillClimbing: "HillClimbing",
}

// String returns the strategy tag.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Strategies returns every supported strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{DFS, BFS, AStar, RBFS, HillClimbing}
}

// ParseStrategy converts a tag into a Strategy. Matching ignores case and
// accepts "a*" and "hill" as aliases.
func ParseStrategy(tag string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "dfs":
		return DFS, nil
	case "bfs":
		return BFS, nil
	case "astar", "a*":
		return AStar, nil
	case "rbfs":
		return RBFS, nil
	case "hillclimbing", "hill":
		return HillClimbing, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, tag)
}

// Result is the outcome of one search run. It is returned even when the
// run fails so the counters can be inspected.
type Result struct {
	Strategy Strategy
	Start    Coord
	GoalAt   Coord

	// Goal is the handle of the goal state, -1 if it was not reached.
	Goal  int
	Arena *Arena

	// Expanded counts neighbors admitted to the frontier.
	Expanded int
	// Steps counts states taken from the frontier.
	Steps int
	// Restarts counts hill-climbing resets.
	Restarts int
}

// Found reports whether the goal was reached.
func (r *Result) Found() bool {
	return r != nil && r.Goal >= 0
}

// Path reconstructs the route to the goal.
func (r *Result) Path() (*Path, error) {
	if !r.Found() {
		return nil, ErrNoPath
	}
	return Reconstruct(r.Arena, r.Goal, r.Start)
}

// searchFunc runs one strategy. r arrives with Start, GoalAt and Arena set.
type searchFunc func(w World, r *Result, o *Options) error

var strategies = map[Strategy]searchFunc{
	DFS:          depthFirst,
	BFS:          breadthFirst,
	AStar:        aStar,
	RBFS:         recursiveBestFirst,
	HillClimbing: hillClimb,
}

// Run searches w from start to its goal with strategy s.
// Returns ErrWorldNil, ErrNoGoal, ErrOptionViolation or ErrUnknownStrategy
// for invalid input, ErrNoPath when the goal is unreachable and
// ErrSearchExhausted when the ceiling is hit. The Result is non-nil whenever
// the search itself ran.
func Run(w World, start Coord, s Strategy, opts ...Option) (*Result, error) {
	if w == nil {
		return nil, ErrWorldNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	fn, ok := strategies[s]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, s)
	}

	goalRow, goalCol, ok := w.GoalLocation()
	if !ok {
		return nil, ErrNoGoal
	}

	r := &Result{
		Strategy: s,
		Start:    start,
		GoalAt:   Coord{Row: goalRow, Col: goalCol},
		Goal:     -1,
		Arena:    NewArena(),
	}
	return r, fn(w, r, &o)
}

// step is a candidate move produced by expansion.
type step struct {
	to     Coord
	action Action
}

// neighbors appends the traversable neighbors of c to buf in canonical order.
func neighbors(w World, c Coord, buf []step) []step {
	buf = buf[:0]
	for _, a := range moves {
		n := c.Apply(a)
		if w.IsTraversable(n.Row, n.Col) {
			buf = append(buf, step{to: n, action: a})
		}
	}
	return buf
}

// stepDistance is the geometric length of a move between adjacent cells.
func stepDistance(a, b Coord) float64 {
	return Euclidean.Distance(a, b)
}
