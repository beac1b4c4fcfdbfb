// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"github.com/spf13/cobra"

	"github.com/vrcgroup/vrcgroup-cli/internal/tui"
)

func newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive group manager",
		Long: `Launch the interactive group manager.

The TUI provides:
- A searchable list of your groups with multi-select
- Bulk visibility changes with live progress
- A represent mode for picking the group shown on your profile
- Copying group IDs to the clipboard`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := getContainer()

			settings, err := c.Settings().Load()
			if err != nil {
				return err
			}
			tui.ApplyTheme(settings.UI.Theme)

			notices := tui.NewNotices()
			session, err := c.NewSession(notices)
			if err != nil {
				return err
			}
			// fail fast on a bad token instead of inside the full-screen view
			client, err := c.Client()
			if err != nil {
				return err
			}
			if _, err := client.CurrentUser(cmd.Context()); err != nil {
				return err
			}

			return tui.Run(cmd.Context(), session, notices)
		},
	}
}
