// Package planner is the entry point for route planning. It validates the
// start and goal against a world, dispatches to a search strategy and
// packages the outcome as an immutable Plan.
package planner

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/gridplan/internal/logger"
	"github.com/Faultbox/gridplan/internal/metrics"
	"github.com/Faultbox/gridplan/internal/search"
)

var (
	// ErrInvalidConfig is returned when the start or goal cannot be planned for.
	ErrInvalidConfig = errors.New("planner: invalid configuration")

	// ErrUnknownStrategy is returned for unrecognized strategy tags.
	ErrUnknownStrategy = search.ErrUnknownStrategy
)

// Outcome classifies a planner run.
type Outcome string

const (
	OutcomeFound     Outcome = "found"
	OutcomeNoPath    Outcome = "no_path"
	OutcomeExhausted Outcome = "exhausted"
)

// Plan is the result of one planner run. It is not modified after Plan returns.
type Plan struct {
	RunID    string
	Strategy search.Strategy
	Start    search.Coord
	Goal     search.Coord

	// Actions lead from Start to Goal; Path holds the cell each one enters.
	Actions []search.Action
	Path    []search.Coord

	// Cost sums the entry cost of every cell in Path, excluding Start.
	Cost int

	Expanded int
	Steps    int
	Restarts int

	Found    bool
	Outcome  Outcome
	Duration time.Duration
}

// Len returns the number of actions in the plan.
func (p *Plan) Len() int {
	return len(p.Actions)
}

// Route returns the plan as a search.Path, nil when nothing was found.
func (p *Plan) Route() *search.Path {
	if !p.Found {
		return nil
	}
	return &search.Path{Actions: p.Actions, Cells: p.Path}
}

// ParseStrategy converts a tag into a Strategy.
func ParseStrategy(tag string) (search.Strategy, error) {
	return search.ParseStrategy(tag)
}

// Planner plans routes from a fixed start to the world's goal.
type Planner struct {
	world search.World
	start search.Coord
	goal  search.Coord
	opts  options
}

// New validates start and the world's goal and returns a Planner.
// Errors wrap ErrInvalidConfig.
func New(w search.World, start search.Coord, opts ...Option) (*Planner, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, search.ErrWorldNil)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	if !inBounds(w, start) {
		return nil, fmt.Errorf("%w: start %s outside %dx%d world", ErrInvalidConfig, start, w.Rows(), w.Cols())
	}
	if !w.IsTraversable(start.Row, start.Col) {
		return nil, fmt.Errorf("%w: start %s is on %s terrain", ErrInvalidConfig, start, w.Status(start.Row, start.Col))
	}

	row, col, ok := w.GoalLocation()
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, search.ErrNoGoal)
	}
	goal := search.Coord{Row: row, Col: col}
	if !inBounds(w, goal) {
		return nil, fmt.Errorf("%w: goal %s outside %dx%d world", ErrInvalidConfig, goal, w.Rows(), w.Cols())
	}

	return &Planner{world: w, start: start, goal: goal, opts: o}, nil
}

func inBounds(w search.World, c search.Coord) bool {
	return c.Row >= 0 && c.Row < w.Rows() && c.Col >= 0 && c.Col < w.Cols()
}

// Start returns the planning start.
func (p *Planner) Start() search.Coord { return p.start }

// Goal returns the goal location captured by New.
func (p *Planner) Goal() search.Coord { return p.goal }

// Plan runs strategy s once. A route that does not exist, or that could not
// be found within the expansion ceiling, is reported as a Plan with
// Found == false and a nil error. Errors are reserved for invalid input and
// internal failures.
func (p *Planner) Plan(s search.Strategy) (*Plan, error) {
	runID := uuid.NewString()
	log := p.opts.logger().With(
		zap.String("run_id", runID),
		zap.Stringer("strategy", s),
	)

	searchOpts := []search.Option{
		search.WithHeuristic(p.opts.heuristic),
		search.WithMaxExpansions(p.opts.maxExpansions),
		search.WithStepCost(p.opts.stepCost),
		search.WithRand(p.opts.random()),
	}
	if p.opts.onExpand != nil {
		searchOpts = append(searchOpts, search.WithOnExpand(p.opts.onExpand))
	}

	log.Debug("Planning route",
		zap.Stringer("start", p.start),
		zap.Stringer("goal", p.goal),
		zap.Stringer("heuristic", p.opts.heuristic),
		zap.Bool("step_cost", p.opts.stepCost),
	)

	began := time.Now()
	res, err := search.Run(p.world, p.start, s, searchOpts...)
	elapsed := time.Since(began)

	plan := &Plan{
		RunID:    runID,
		Strategy: s,
		Start:    p.start,
		Goal:     p.goal,
		Duration: elapsed,
	}
	if res != nil {
		plan.Expanded = res.Expanded
		plan.Steps = res.Steps
		plan.Restarts = res.Restarts
	}

	switch {
	case err == nil:
		route, rerr := res.Path()
		if rerr != nil {
			log.Error("Route reconstruction failed", zap.Error(rerr))
			return nil, rerr
		}
		plan.Actions = route.Actions
		plan.Path = route.Cells
		plan.Cost = route.Cost(p.world)
		plan.Found = true
		plan.Outcome = OutcomeFound
	case errors.Is(err, search.ErrNoPath):
		plan.Outcome = OutcomeNoPath
	case errors.Is(err, search.ErrSearchExhausted):
		plan.Outcome = OutcomeExhausted
	default:
		log.Warn("Planning failed", zap.Error(err))
		return nil, err
	}

	p.opts.recorder.RecordPlan(metrics.PlanSample{
		Strategy: s.String(),
		Outcome:  string(plan.Outcome),
		Found:    plan.Found,
		Expanded: plan.Expanded,
		Steps:    plan.Steps,
		Cost:     plan.Cost,
		Length:   plan.Len(),
		Duration: elapsed,
	})

	log.Info("Plan finished",
		zap.String("outcome", string(plan.Outcome)),
		zap.Int("length", plan.Len()),
		zap.Int("cost", plan.Cost),
		zap.Int("expanded", plan.Expanded),
		zap.Int("steps", plan.Steps),
		zap.Int("restarts", plan.Restarts),
		zap.Duration("duration", elapsed),
	)

	return plan, nil
}

// PlanTag parses tag and plans with the resulting strategy.
func (p *Planner) PlanTag(tag string) (*Plan, error) {
	s, err := ParseStrategy(tag)
	if err != nil {
		return nil, err
	}
	return p.Plan(s)
}

// options collects planner settings.
type options struct {
	heuristic     search.Heuristic
	maxExpansions int
	stepCost      bool
	seed          int64
	rng           *rand.Rand
	onExpand      func(search.Coord)
	recorder      *metrics.Recorder
	log           *zap.Logger
	err           error
}

func defaultOptions() options {
	return options{
		heuristic:     search.Euclidean,
		maxExpansions: search.DefaultMaxExpansions,
		stepCost:      true,
	}
}

// random returns the shared source, or a fresh one seeded for this run so
// repeated runs of the same planner are reproducible.
func (o *options) random() *rand.Rand {
	if o.rng != nil {
		return o.rng
	}
	seed := o.seed
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}

func (o *options) logger() *zap.Logger {
	if o.log != nil {
		return o.log
	}
	return logger.Log
}

// Option configures a Planner.
type Option func(*options)

// WithHeuristic selects the A* and RBFS heuristic.
func WithHeuristic(h search.Heuristic) Option {
	return func(o *options) {
		o.heuristic = h
	}
}

// WithMaxExpansions sets the expansion ceiling; zero keeps the default.
func WithMaxExpansions(n int) Option {
	return func(o *options) {
		switch {
		case n < 0:
			o.err = fmt.Errorf("%w: max expansions cannot be negative (%d)", ErrInvalidConfig, n)
		case n == 0:
			o.maxExpansions = search.DefaultMaxExpansions
		default:
			o.maxExpansions = n
		}
	}
}

// WithStepCost controls whether A* charges the length of each move on top
// of terrain cost. Disabled, A* returns the least terrain cost route.
func WithStepCost(enabled bool) Option {
	return func(o *options) {
		o.stepCost = enabled
	}
}

// WithSeed seeds hill-climbing. Each run starts from a fresh source.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithRand shares one random source across runs.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithOnExpand observes every expanded state.
func WithOnExpand(fn func(search.Coord)) Option {
	return func(o *options) {
		o.onExpand = fn
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r *metrics.Recorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

// WithLogger overrides the global logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}
