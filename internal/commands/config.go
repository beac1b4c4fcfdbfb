// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrcgroup/vrcgroup-cli/internal/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vrcgroup configuration",
		Long: `Manage the CLI configuration stored in config.yaml. Every key can also be
set through a VRCGROUP_* environment variable, e.g. VRCGROUP_CONCURRENCY.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.Keys(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := config.LoadConfig()
			if err != nil {
				def := config.Default()
				current = &def
			}
			if err := current.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := config.SaveConfig(current); err != nil {
				return err
			}
			value, _ := current.Get(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s set to %s\n", successStyle.Render("✓"), args[0], value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				value, err := cfg.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(out, value)
				return nil
			}
			for _, key := range config.Keys() {
				value, _ := cfg.Get(key)
				fmt.Fprintf(out, "%-12s %s\n", key+":", value)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printPath(cmd.OutOrStdout(), config.File())
		},
	})

	return cmd
}
