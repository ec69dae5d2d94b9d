package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gridplan/internal/logger"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or save the effective configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "save [path]",
		Short: "Write the effective configuration to a file",
		Long: `Write the effective configuration to path, or to config.yaml in the user
config directory when no path is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
				if err := a.cfg.SaveTo(path); err != nil {
					return err
				}
			} else {
				var err error
				if path, err = a.cfg.Save(); err != nil {
					return err
				}
			}
			logger.Sugar.Infof("Saved configuration to %s", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved configuration to %s\n", path)
			return nil
		},
	})

	return cmd
}
