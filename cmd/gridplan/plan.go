package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Faultbox/gridplan/internal/debug"
	"github.com/Faultbox/gridplan/internal/planner"
	"github.com/Faultbox/gridplan/internal/search"
)

func newPlanCommand(a *app) *cobra.Command {
	var noRender bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a route and print it",
		Long: `Plan a route from the start cell to the goal with one strategy and print
the actions, counters and a rendering of the route.`,
		Example: `  # A* across layout 1
  gridplan plan --strategy AStar --start 0,0 --goal 9,9 --layout 1

  # Seeded hill-climbing
  gridplan plan -s hill --seed 7 --layout 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, p, err := a.newPlanner()
			if err != nil {
				return err
			}
			plan, err := p.PlanTag(a.cfg.Planner.Strategy)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := printPlan(out, plan); err != nil {
				return err
			}
			if !noRender {
				r := debug.NewTileGridRenderer(env)
				fmt.Fprintln(out)
				fmt.Fprint(out, r.Render(debug.Route(plan.Start, plan.Route())))
			}
			return nil
		},
	}

	a.flags.BindWorld(cmd.Flags())
	a.flags.BindPlanner(cmd.Flags())
	cmd.Flags().BoolVar(&noRender, "no-render", false, "Skip the grid rendering")

	return cmd
}

// printPlan writes the plan summary as aligned key/value lines.
func printPlan(out io.Writer, plan *planner.Plan) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Strategy:\t%s\n", plan.Strategy)
	fmt.Fprintf(tw, "Outcome:\t%s\n", plan.Outcome)
	fmt.Fprintf(tw, "Run ID:\t%s\n", plan.RunID)
	fmt.Fprintf(tw, "Start:\t%s\n", plan.Start)
	fmt.Fprintf(tw, "Goal:\t%s\n", plan.Goal)
	if plan.Found {
		fmt.Fprintf(tw, "Actions:\t%s\n", formatActions(plan.Actions))
		fmt.Fprintf(tw, "Length:\t%d\n", plan.Len())
		fmt.Fprintf(tw, "Cost:\t%d\n", plan.Cost)
	}
	fmt.Fprintf(tw, "Expanded:\t%d\n", plan.Expanded)
	fmt.Fprintf(tw, "Steps:\t%d\n", plan.Steps)
	if plan.Strategy == search.HillClimbing {
		fmt.Fprintf(tw, "Restarts:\t%d\n", plan.Restarts)
	}
	return tw.Flush()
}

func formatActions(actions []search.Action) string {
	if len(actions) == 0 {
		return "(none)"
	}
	names := make([]string, len(actions))
	for i, action := range actions {
		names[i] = action.String()
	}
	return strings.Join(names, " ")
}
