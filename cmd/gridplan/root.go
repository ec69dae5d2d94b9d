package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/gridplan/internal/config"
	"github.com/Faultbox/gridplan/internal/logger"
	"github.com/Faultbox/gridplan/internal/metrics"
	"github.com/Faultbox/gridplan/internal/planner"
	"github.com/Faultbox/gridplan/internal/search"
	"github.com/Faultbox/gridplan/internal/world"
)

// app carries state shared by every command.
type app struct {
	flags    config.Flags
	cfg      *config.Config
	recorder *metrics.Recorder
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "gridplan",
		Short: "Grid route planner",
		Long: `gridplan plans a route for a single agent across a grid of terrain with
varying traversal cost.

Strategies:
  DFS           depth-first, first route found
  BFS           breadth-first, fewest moves
  AStar         least terrain cost plus move count
                (terrain cost only with --step-cost=false)
  RBFS          greedy best-first on heuristic plus entry cost
  HillClimbing  random walk with restarts

Settings are read from defaults, then gridplan.yaml (or --config), then flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	// Persistent flags available to all commands
	a.flags.BindGlobal(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newPlanCommand(a))
	rootCmd.AddCommand(newRunCommand(a))
	rootCmd.AddCommand(newCompareCommand(a))
	rootCmd.AddCommand(newRenderCommand(a))
	rootCmd.AddCommand(newExportCommand(a))
	rootCmd.AddCommand(newConfigCommand(a))

	return rootCmd
}

// setup loads the configuration and starts logging and metrics.
func (a *app) setup() error {
	cfg, err := config.Load(&a.flags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	a.recorder, err = metrics.New(metrics.Config{
		Enabled:   cfg.Metrics.File != "",
		Namespace: cfg.Metrics.Namespace,
	})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	logger.Debug("Configuration loaded",
		zap.String("strategy", cfg.Planner.Strategy),
		zap.String("layout", cfg.World.Layout),
		zap.String("layout_file", cfg.World.LayoutFile),
		zap.Bool("metrics", a.recorder.Enabled()),
	)
	return nil
}

// teardown exports metrics and flushes the log.
func (a *app) teardown() error {
	defer logger.Sync()
	if a.cfg == nil {
		return nil
	}
	if err := a.recorder.WriteTextfile(a.cfg.Metrics.File); err != nil {
		logger.Error("Failed to write metrics", zap.Error(err))
		return err
	}
	return nil
}

// buildWorld creates the configured environment and the start cell.
func (a *app) buildWorld() (*world.Environment, search.Coord, error) {
	wc := a.cfg.World
	opts := []world.Option{world.WithHeavyTerrain(world.ParseHeavyTerrainPolicy(wc.HeavyTerrain))}

	var (
		env *world.Environment
		err error
	)
	if wc.LayoutFile != "" {
		env, err = world.LoadFile(wc.LayoutFile, opts...)
		if err != nil {
			return nil, search.Coord{}, err
		}
	} else {
		env = world.NewLayout(wc.Layout, wc.Rows, wc.Cols, opts...)
	}

	if wc.Goal != nil {
		if !env.InBounds(wc.Goal.Row, wc.Goal.Col) {
			return nil, search.Coord{}, fmt.Errorf("%w: goal %s outside %dx%d world",
				planner.ErrInvalidConfig, *wc.Goal, env.Rows(), env.Cols())
		}
		env.SetTarget(wc.Goal.Row, wc.Goal.Col)
	}

	return env, search.Coord{Row: wc.Start.Row, Col: wc.Start.Col}, nil
}

// plannerOptions maps the search settings onto planner options.
func (a *app) plannerOptions() ([]planner.Option, error) {
	pc := a.cfg.Planner
	h, err := search.ParseHeuristic(pc.Heuristic)
	if err != nil {
		return nil, err
	}
	return []planner.Option{
		planner.WithHeuristic(h),
		planner.WithMaxExpansions(pc.MaxExpansions),
		planner.WithStepCost(pc.StepCost),
		planner.WithSeed(pc.Seed),
		planner.WithRecorder(a.recorder),
	}, nil
}

// newPlanner builds the world and a planner over it.
func (a *app) newPlanner() (*world.Environment, *planner.Planner, error) {
	env, start, err := a.buildWorld()
	if err != nil {
		return nil, nil, err
	}
	opts, err := a.plannerOptions()
	if err != nil {
		return nil, nil, err
	}
	p, err := planner.New(env, start, opts...)
	if err != nil {
		return nil, nil, err
	}
	return env, p, nil
}
