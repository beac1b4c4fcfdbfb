// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrcgroup/vrcgroup-cli/internal/config"
)

func newSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change your saved preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "get [key]",
		Short:     "Print one setting, or all of them",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: config.SettingKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := getContainer().Settings()
			out := cmd.OutOrStdout()

			keys := config.SettingKeys()
			if len(args) == 1 {
				value, err := store.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(out, value)
				return nil
			}
			for _, key := range keys {
				value, err := store.Get(key)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-20s %s\n", key+":", value)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.SettingKeys(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := getContainer().Settings().Set(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s set to %s\n", successStyle.Render("✓"), args[0], args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printPath(cmd.OutOrStdout(), getContainer().Settings().Path())
		},
	})

	return cmd
}
