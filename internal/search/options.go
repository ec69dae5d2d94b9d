package search

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultMaxExpansions bounds a run when no ceiling is configured.
const DefaultMaxExpansions = 100000

// defaultSeed is used when no random source is supplied.
const defaultSeed int64 = 1

// Heuristic estimates the remaining cost between two coordinates.
type Heuristic int

const (
	// Euclidean is the straight-line distance.
	Euclidean Heuristic = iota
	// Manhattan is the grid distance.
	Manhattan
)

// Distance returns the estimate between a and b.
func (h Heuristic) Distance(a, b Coord) float64 {
	dr := float64(a.Row - b.Row)
	dc := float64(a.Col - b.Col)
	if h == Manhattan {
		return math.Abs(dr) + math.Abs(dc)
	}
	return math.Sqrt(dr*dr + dc*dc)
}

// String returns the config name of the heuristic.
func (h Heuristic) String() string {
	if h == Manhattan {
		return "manhattan"
	}
	return "euclidean"
}

// ParseHeuristic converts a config name into a Heuristic.
func ParseHeuristic(name string) (Heuristic, error) {
	switch name {
	case "", "euclidean":
		return Euclidean, nil
	case "manhattan":
		return Manhattan, nil
	}
	return 0, fmt.Errorf("%w: unknown heuristic %q", ErrOptionViolation, name)
}

// Option configures a search run via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation by Run.
type Option func(*Options)

// Options holds the parameters of a search run.
type Options struct {
	// Heuristic drives A* and RBFS ordering.
	Heuristic Heuristic

	// MaxExpansions caps the number of states taken from the frontier
	// (or hill-climbing moves). Reaching it ends the run with
	// ErrSearchExhausted.
	MaxExpansions int

	// Rand is the random source for hill-climbing.
	Rand *rand.Rand

	// StepCost adds the length of each move to the terrain cost A* pays
	// for entering a cell. With it off, A* minimizes terrain cost alone.
	StepCost bool

	// OnExpand is called for every state taken from the frontier.
	OnExpand func(c Coord)

	err error
}

// DefaultOptions returns Options with the Euclidean heuristic, the default
// expansion ceiling, step cost enabled and a no-op hook.
func DefaultOptions() Options {
	return Options{
		Heuristic:     Euclidean,
		MaxExpansions: DefaultMaxExpansions,
		StepCost:      true,
		OnExpand:      func(Coord) {},
	}
}

// WithHeuristic selects the heuristic.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) {
		o.Heuristic = h
	}
}

// WithMaxExpansions sets the expansion ceiling.
//
//	n > 0: cap at n
//	n == 0: DefaultMaxExpansions
//	n < 0: ErrOptionViolation
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		switch {
		case n < 0:
			o.err = fmt.Errorf("%w: MaxExpansions cannot be negative (%d)", ErrOptionViolation, n)
		case n == 0:
			o.MaxExpansions = DefaultMaxExpansions
		default:
			o.MaxExpansions = n
		}
	}
}

// WithStepCost toggles the per-move length in A* path cost.
func WithStepCost(enabled bool) Option {
	return func(o *Options) {
		o.StepCost = enabled
	}
}

// WithSeed seeds a fresh random source. A zero seed uses the fixed default.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		if seed == 0 {
			seed = defaultSeed
		}
		o.Rand = rand.New(rand.NewSource(seed))
	}
}

// WithRand shares an existing random source. It is not safe for concurrent use.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r != nil {
			o.Rand = r
		}
	}
}

// WithOnExpand registers a callback for every expanded state.
func WithOnExpand(fn func(c Coord)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

func (o *Options) rand() *rand.Rand {
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(defaultSeed))
	}
	return o.Rand
}
