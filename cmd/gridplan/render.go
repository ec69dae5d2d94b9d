package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/gridplan/internal/debug"
)

const legend = `. plain  w puddle  m mountain  G goal  x impassable`

func newRenderCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "render",
		Short:   "Print a layout",
		Example: `  gridplan render --layout 2 --rows 12 --cols 12`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, _, err := a.buildWorld()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, debug.NewTileGridRenderer(env).Render(nil))
			fmt.Fprintln(out)
			fmt.Fprintln(out, legend)
			return nil
		},
	}

	a.flags.BindWorld(cmd.Flags())

	return cmd
}
