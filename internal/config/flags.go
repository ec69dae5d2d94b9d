package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flags holds command-line overrides. Only flags the user actually set
// override the file.
type Flags struct {
	ConfigPath  string
	Debug       bool
	LogFile     string
	MetricsFile string

	Strategy      string
	Heuristic     string
	MaxExpansions int
	StepCost      bool
	Seed          int64

	Layout       string
	LayoutFile   string
	Rows         int
	Cols         int
	HeavyTerrain string
	Start        string
	Goal         string

	MaxTicks int
	Trials   int

	sets []*pflag.FlagSet
}

func (f *Flags) track(fs *pflag.FlagSet) {
	f.sets = append(f.sets, fs)
}

// BindGlobal registers flags shared by every command.
func (f *Flags) BindGlobal(fs *pflag.FlagSet) {
	f.track(fs)
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to a rotating file")
	fs.StringVar(&f.MetricsFile, "metrics-file", "", "Write Prometheus metrics to a textfile on exit")
}

// BindWorld registers flags that shape the grid.
func (f *Flags) BindWorld(fs *pflag.FlagSet) {
	f.track(fs)
	fs.StringVarP(&f.Layout, "layout", "l", "", "Built-in obstacle layout (open, 1, 2)")
	fs.StringVar(&f.LayoutFile, "layout-file", "", "YAML layout or binary map file")
	fs.IntVar(&f.Rows, "rows", 0, "Grid rows")
	fs.IntVar(&f.Cols, "cols", 0, "Grid columns")
	fs.StringVar(&f.HeavyTerrain, "heavy-terrain", "", "Puddle policy (impassable, enterable)")
	fs.StringVar(&f.Start, "start", "", "Start cell as row,col")
	fs.StringVar(&f.Goal, "goal", "", "Goal cell as row,col")
}

// BindPlanner registers the strategy flag and the search flags.
func (f *Flags) BindPlanner(fs *pflag.FlagSet) {
	fs.StringVarP(&f.Strategy, "strategy", "s", "", "Search strategy (DFS, BFS, AStar, RBFS, HillClimbing)")
	f.BindSearch(fs)
}

// BindSearch registers flags tuning every strategy.
func (f *Flags) BindSearch(fs *pflag.FlagSet) {
	f.track(fs)
	fs.StringVar(&f.Heuristic, "heuristic", "", "A* and RBFS heuristic (euclidean, manhattan)")
	fs.IntVar(&f.MaxExpansions, "max-expansions", 0, "Expansion ceiling per run")
	fs.BoolVar(&f.StepCost, "step-cost", true, "A* charges one unit per move on top of terrain cost")
	fs.Int64Var(&f.Seed, "seed", 0, "Random seed for hill-climbing")
}

// BindSimulation registers tick loop flags.
func (f *Flags) BindSimulation(fs *pflag.FlagSet) {
	f.track(fs)
	fs.IntVar(&f.MaxTicks, "max-ticks", 0, "Tick cap for the simulation")
}

// BindCompare registers batch comparison flags.
func (f *Flags) BindCompare(fs *pflag.FlagSet) {
	f.track(fs)
	fs.IntVarP(&f.Trials, "trials", "n", 0, "Random start/goal pairs per layout")
}

// changed reports whether the named flag was set on any bound flag set.
func (f *Flags) changed(name string) bool {
	for _, fs := range f.sets {
		if fl := fs.Lookup(name); fl != nil && fl.Changed {
			return true
		}
	}
	return false
}

// applyFlags applies CLI flag overrides to the config.
func (f *Flags) applyFlags(cfg *Config) error {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.changed("log-file") {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.changed("metrics-file") {
		cfg.Metrics.File = f.MetricsFile
	}

	if f.changed("strategy") {
		cfg.Planner.Strategy = f.Strategy
	}
	if f.changed("heuristic") {
		cfg.Planner.Heuristic = f.Heuristic
	}
	if f.changed("max-expansions") {
		cfg.Planner.MaxExpansions = f.MaxExpansions
	}
	if f.changed("step-cost") {
		cfg.Planner.StepCost = f.StepCost
	}
	if f.changed("seed") {
		cfg.Planner.Seed = f.Seed
	}

	if f.changed("layout") {
		cfg.World.Layout = f.Layout
	}
	if f.changed("layout-file") {
		cfg.World.LayoutFile = f.LayoutFile
	}
	if f.changed("rows") {
		cfg.World.Rows = f.Rows
	}
	if f.changed("cols") {
		cfg.World.Cols = f.Cols
	}
	if f.changed("heavy-terrain") {
		cfg.World.HeavyTerrain = f.HeavyTerrain
	}
	if f.changed("start") {
		p, err := ParsePoint(f.Start)
		if err != nil {
			return fmt.Errorf("--start: %w", err)
		}
		cfg.World.Start = p
	}
	if f.changed("goal") {
		p, err := ParsePoint(f.Goal)
		if err != nil {
			return fmt.Errorf("--goal: %w", err)
		}
		cfg.World.Goal = &p
	}

	if f.changed("max-ticks") {
		cfg.Simulation.MaxTicks = f.MaxTicks
	}
	if f.changed("trials") {
		cfg.Compare.Trials = f.Trials
	}
	return nil
}
