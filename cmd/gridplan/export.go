package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/gridplan/internal/logger"
	"github.com/Faultbox/gridplan/pkg/formats"
)

func newExportCommand(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a layout as a binary map file",
		Long: `Write the configured world, goal included, as a binary map. The file can
be loaded back with --layout-file.`,
		Example: `  gridplan export --layout 1 --out layout1.grd
  gridplan plan --layout-file layout1.grd -s BFS`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, _, err := a.buildWorld()
			if err != nil {
				return err
			}
			g := env.Grid()
			if err := formats.WriteGridFile(out, g); err != nil {
				return fmt.Errorf("export %s: %w", out, err)
			}

			minCost, maxCost := g.GetCostRange()
			log := logger.With(zap.String("path", out))
			log.Info("Exported map",
				zap.Uint32("rows", g.Rows),
				zap.Uint32("cols", g.Cols),
				zap.Int32("min_cost", minCost),
				zap.Int32("max_cost", maxCost),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %dx%d map to %s\n", g.Rows, g.Cols, out)
			fmt.Fprintf(cmd.OutOrStdout(), "Tiles: %s\n", formatCounts(g.CountByStatus()))
			return nil
		},
	}

	a.flags.BindWorld(cmd.Flags())
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

// formatCounts lists tile counts in status order.
func formatCounts(counts map[formats.TileStatus]int) string {
	parts := make([]string, 0, formats.TileImpassable+1)
	for s := formats.TilePlain; s <= formats.TileImpassable; s++ {
		parts = append(parts, fmt.Sprintf("%s=%d", s, counts[s]))
	}
	return strings.Join(parts, " ")
}
