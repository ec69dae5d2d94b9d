package sim

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gridplan/internal/logger"
	"github.com/Faultbox/gridplan/internal/metrics"
	"github.com/Faultbox/gridplan/internal/search"
)

// DefaultMaxTicks bounds a simulation when no cap is configured.
const DefaultMaxTicks = 200

// ErrNilAgent is returned when a simulation is created without an agent.
var ErrNilAgent = errors.New("sim: agent is nil")

// World is the environment the simulation moves the agent through.
type World interface {
	search.World
	GoalReached(row, col int) bool
}

// Tick describes one simulated step.
type Tick struct {
	Number   int
	Action   search.Action
	Position search.Coord
	// Applied is false when the move was rejected by the world.
	Applied bool
}

// Report is the performance measure of one simulation.
type Report struct {
	RunID    string
	Strategy search.Strategy

	Timesteps int
	GoalMet   bool
	Final     search.Coord

	// EnergyCost sums the entry cost of every cell the agent moved into.
	EnergyCost int
	// Rejected counts moves the world refused.
	Rejected int

	PlanFound  bool
	PlanLength int
	PlanCost   int
	Expanded   int
	Steps      int
	Restarts   int
}

// Simulation advances an agent one action per tick.
type Simulation struct {
	world    World
	agent    *Agent
	maxTicks int
	onTick   func(Tick)
	recorder *metrics.Recorder
	log      *zap.Logger
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithMaxTicks caps the number of ticks; values below one keep the default.
func WithMaxTicks(n int) Option {
	return func(s *Simulation) {
		if n > 0 {
			s.maxTicks = n
		}
	}
}

// WithOnTick observes every tick after it is applied.
func WithOnTick(fn func(Tick)) Option {
	return func(s *Simulation) {
		s.onTick = fn
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r *metrics.Recorder) Option {
	return func(s *Simulation) {
		s.recorder = r
	}
}

// WithLogger overrides the global logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Simulation) {
		s.log = l
	}
}

// New creates a simulation of agent in w.
func New(w World, agent *Agent, opts ...Option) (*Simulation, error) {
	if w == nil {
		return nil, search.ErrWorldNil
	}
	if agent == nil {
		return nil, ErrNilAgent
	}
	s := &Simulation{
		world:    w,
		agent:    agent,
		maxTicks: DefaultMaxTicks,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Log
	}
	return s, nil
}

// Run plans once, then hands the agent's actions to the world until the
// goal is reached or the tick cap runs out. A move is applied only when
// the destination is traversable; otherwise the agent stays put and the
// tick still counts.
func (s *Simulation) Run() (*Report, error) {
	plan, err := s.agent.Plan()
	if err != nil {
		return nil, fmt.Errorf("sim: plan: %w", err)
	}

	report := &Report{
		RunID:      plan.RunID,
		Strategy:   plan.Strategy,
		PlanFound:  plan.Found,
		PlanLength: plan.Len(),
		PlanCost:   plan.Cost,
		Expanded:   plan.Expanded,
		Steps:      plan.Steps,
		Restarts:   plan.Restarts,
	}
	log := s.log.With(zap.String("run_id", plan.RunID), zap.Stringer("strategy", plan.Strategy))

	for report.Timesteps < s.maxTicks && !s.goalReached() {
		action := s.agent.NextAction()
		tick := Tick{Number: report.Timesteps + 1, Action: action, Applied: true}

		if action != search.DoNothing {
			next := s.agent.Position().Apply(action)
			if s.world.IsTraversable(next.Row, next.Col) {
				s.agent.moveTo(next)
				report.EnergyCost += s.world.Cost(next.Row, next.Col)
			} else {
				tick.Applied = false
				report.Rejected++
				log.Debug("Move rejected", zap.Stringer("action", action), zap.Stringer("to", next))
			}
		}

		tick.Position = s.agent.Position()
		report.Timesteps++
		if s.onTick != nil {
			s.onTick(tick)
		}
	}

	report.Final = s.agent.Position()
	report.GoalMet = s.goalReached()

	s.recorder.RecordSimulation(plan.Strategy.String(), report.Timesteps, report.GoalMet)
	log.Info("Simulation finished",
		zap.Int("timesteps", report.Timesteps),
		zap.Bool("goal_met", report.GoalMet),
		zap.Int("energy_cost", report.EnergyCost),
		zap.Int("rejected", report.Rejected),
	)

	return report, nil
}

func (s *Simulation) goalReached() bool {
	pos := s.agent.Position()
	return s.world.GoalReached(pos.Row, pos.Col)
}
