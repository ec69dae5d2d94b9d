package sim

import (
	"fmt"
	"math/rand"

	"github.com/Faultbox/gridplan/internal/metrics"
	"github.com/Faultbox/gridplan/internal/planner"
	"github.com/Faultbox/gridplan/internal/search"
	"github.com/Faultbox/gridplan/internal/world"
	"github.com/Faultbox/gridplan/pkg/formats"
)

// CompareConfig describes a batch of trials.
type CompareConfig struct {
	// Layouts are built-in layout names; empty means every built-in layout.
	Layouts    []string
	Rows, Cols int
	// Trials is the number of random start/goal pairs per layout.
	Trials int
	// Seed drives both pair selection and hill-climbing.
	Seed int64
	// Strategies defaults to every strategy.
	Strategies []search.Strategy

	MaxTicks      int
	MaxExpansions int
	Heuristic     search.Heuristic
	// TerrainOnly drops the per-move charge from A* path cost.
	TerrainOnly   bool
	HeavyTerrain  world.HeavyTerrainPolicy
	Recorder      *metrics.Recorder
}

// Summary aggregates the trials of one strategy on one layout.
type Summary struct {
	Strategy  search.Strategy
	Layout    string
	Trials    int
	Successes int

	// AvgTimesteps and AvgExpanded are over every trial.
	AvgTimesteps float64
	AvgExpanded  float64
	// AvgEnergy is over successful trials only.
	AvgEnergy float64
}

// Compare runs every strategy on the same random start/goal pairs for each
// layout and returns one Summary per layout and strategy, layouts outermost.
func Compare(cfg CompareConfig) ([]Summary, error) {
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("%w: trials must be positive (%d)", planner.ErrInvalidConfig, cfg.Trials)
	}
	if cfg.Rows <= 0 {
		cfg.Rows = world.DefaultRows
	}
	if cfg.Cols <= 0 {
		cfg.Cols = world.DefaultCols
	}
	layouts := cfg.Layouts
	if len(layouts) == 0 {
		layouts = world.Layouts()
	}
	strategies := cfg.Strategies
	if len(strategies) == 0 {
		strategies = search.Strategies()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))

	var summaries []Summary
	for _, name := range layouts {
		sums := make([]Summary, len(strategies))
		for i, s := range strategies {
			sums[i] = Summary{Strategy: s, Layout: name}
		}

		for trial := 0; trial < cfg.Trials; trial++ {
			env := world.NewLayout(name, cfg.Rows, cfg.Cols, world.WithHeavyTerrain(cfg.HeavyTerrain))
			start, ok := placeTrial(env, rng)
			if !ok {
				return nil, fmt.Errorf("%w: layout %q has no room for a start and goal", planner.ErrInvalidConfig, name)
			}

			for i, s := range strategies {
				report, err := runTrial(env, start, s, seed+int64(trial), cfg)
				if err != nil {
					return nil, fmt.Errorf("layout %q trial %d %s: %w", name, trial, s, err)
				}
				sum := &sums[i]
				sum.Trials++
				sum.AvgTimesteps += float64(report.Timesteps)
				sum.AvgExpanded += float64(report.Expanded)
				if report.GoalMet {
					sum.Successes++
					sum.AvgEnergy += float64(report.EnergyCost)
				}
			}
		}

		for i := range sums {
			sum := &sums[i]
			sum.AvgTimesteps /= float64(sum.Trials)
			sum.AvgExpanded /= float64(sum.Trials)
			if sum.Successes > 0 {
				sum.AvgEnergy /= float64(sum.Successes)
			}
		}
		summaries = append(summaries, sums...)
	}
	return summaries, nil
}

// placeTrial puts the goal on a random plain cell and picks a different
// traversable start.
func placeTrial(env *world.Environment, rng *rand.Rand) (search.Coord, bool) {
	var plain, open []search.Coord
	for row := 0; row < env.Rows(); row++ {
		for col := 0; col < env.Cols(); col++ {
			if !env.IsTraversable(row, col) {
				continue
			}
			c := search.Coord{Row: row, Col: col}
			open = append(open, c)
			if env.Status(row, col) == formats.TilePlain {
				plain = append(plain, c)
			}
		}
	}
	if len(plain) == 0 || len(open) < 2 {
		return search.Coord{}, false
	}

	goal := plain[rng.Intn(len(plain))]
	env.SetTarget(goal.Row, goal.Col)

	for {
		start := open[rng.Intn(len(open))]
		if start != goal {
			return start, true
		}
	}
}

func runTrial(env *world.Environment, start search.Coord, s search.Strategy, seed int64, cfg CompareConfig) (*Report, error) {
	p, err := planner.New(env, start,
		planner.WithHeuristic(cfg.Heuristic),
		planner.WithMaxExpansions(cfg.MaxExpansions),
		planner.WithStepCost(!cfg.TerrainOnly),
		planner.WithSeed(seed),
		planner.WithRecorder(cfg.Recorder),
	)
	if err != nil {
		return nil, err
	}
	simulation, err := New(env, NewAgent(p, s),
		WithMaxTicks(cfg.MaxTicks),
		WithRecorder(cfg.Recorder),
	)
	if err != nil {
		return nil, err
	}
	return simulation.Run()
}
