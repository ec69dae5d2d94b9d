package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Faultbox/gridplan/internal/debug"
	"github.com/Faultbox/gridplan/internal/planner"
	"github.com/Faultbox/gridplan/internal/sim"
)

func newRunCommand(a *app) *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the tick simulation and print the performance measure",
		Long: `Plan once, then hand the agent one action per tick until it reaches the
goal or the tick cap runs out. Moves into cells that cannot be entered are
refused and the agent stays put.`,
		Example: `  gridplan run --strategy BFS --layout 2 --trace
  gridplan run -s DFS --max-ticks 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, p, err := a.newPlanner()
			if err != nil {
				return err
			}
			strategy, err := planner.ParseStrategy(a.cfg.Planner.Strategy)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			opts := []sim.Option{
				sim.WithMaxTicks(a.cfg.Simulation.MaxTicks),
				sim.WithRecorder(a.recorder),
			}
			if trace {
				opts = append(opts, sim.WithOnTick(func(t sim.Tick) {
					note := ""
					if !t.Applied {
						note = " (refused)"
					}
					fmt.Fprintf(out, "tick %3d  %-11s -> %s%s\n", t.Number, t.Action, t.Position, note)
				}))
			}

			agent := sim.NewAgent(p, strategy)
			s, err := sim.New(env, agent, opts...)
			if err != nil {
				return err
			}
			report, err := s.Run()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Strategy:\t%s\n", report.Strategy)
			fmt.Fprintf(tw, "Run ID:\t%s\n", report.RunID)
			fmt.Fprintf(tw, "Goal met:\t%t\n", report.GoalMet)
			fmt.Fprintf(tw, "Timesteps:\t%d\n", report.Timesteps)
			fmt.Fprintf(tw, "Expanded:\t%d\n", report.Expanded)
			fmt.Fprintf(tw, "Energy cost:\t%d\n", report.EnergyCost)
			fmt.Fprintf(tw, "Refused moves:\t%d\n", report.Rejected)
			fmt.Fprintf(tw, "Final cell:\t%s\n", report.Final)
			if err := tw.Flush(); err != nil {
				return err
			}

			plan, err := agent.Plan()
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprint(out, debug.NewTileGridRenderer(env).Render(debug.Route(plan.Start, plan.Route())))
			return nil
		},
	}

	a.flags.BindWorld(cmd.Flags())
	a.flags.BindPlanner(cmd.Flags())
	a.flags.BindSimulation(cmd.Flags())
	cmd.Flags().BoolVar(&trace, "trace", false, "Print every tick")

	return cmd
}
