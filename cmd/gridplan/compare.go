package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Faultbox/gridplan/internal/search"
	"github.com/Faultbox/gridplan/internal/sim"
	"github.com/Faultbox/gridplan/internal/world"
)

func newCompareCommand(a *app) *cobra.Command {
	var strategyTags []string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare strategies over random start and goal pairs",
		Long: `Run every strategy on the same seeded random start/goal pairs for each
layout and print averages of timesteps, expanded states and energy cost.
Energy is averaged over the trials that reached the goal.`,
		Example: `  gridplan compare --trials 20
  gridplan compare -n 5 --strategies BFS,AStar --seed 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var strategies []search.Strategy
			for _, tag := range strategyTags {
				s, err := search.ParseStrategy(tag)
				if err != nil {
					return err
				}
				strategies = append(strategies, s)
			}
			h, err := search.ParseHeuristic(a.cfg.Planner.Heuristic)
			if err != nil {
				return err
			}

			summaries, err := sim.Compare(sim.CompareConfig{
				Layouts:       a.cfg.Compare.Layouts,
				Rows:          a.cfg.World.Rows,
				Cols:          a.cfg.World.Cols,
				Trials:        a.cfg.Compare.Trials,
				Seed:          a.cfg.Planner.Seed,
				Strategies:    strategies,
				MaxTicks:      a.cfg.Simulation.MaxTicks,
				MaxExpansions: a.cfg.Planner.MaxExpansions,
				Heuristic:     h,
				TerrainOnly:   !a.cfg.Planner.StepCost,
				HeavyTerrain:  world.ParseHeavyTerrainPolicy(a.cfg.World.HeavyTerrain),
				Recorder:      a.recorder,
			})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "LAYOUT\tSTRATEGY\tTRIALS\tGOAL MET\tAVG TICKS\tAVG EXPANDED\tAVG ENERGY")
			for _, s := range summaries {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.1f\t%.1f\t%.1f\n",
					s.Layout, s.Strategy, s.Trials, s.Successes, s.AvgTimesteps, s.AvgExpanded, s.AvgEnergy)
			}
			return tw.Flush()
		},
	}

	a.flags.BindWorld(cmd.Flags())
	a.flags.BindSearch(cmd.Flags())
	a.flags.BindSimulation(cmd.Flags())
	a.flags.BindCompare(cmd.Flags())
	cmd.Flags().StringSliceVar(&strategyTags, "strategies", nil, "Strategies to compare (default all)")

	return cmd
}
