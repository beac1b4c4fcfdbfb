// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the vrcgroup command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vrcgroup/vrcgroup-cli/internal/config"
	"github.com/vrcgroup/vrcgroup-cli/internal/errors"
	"github.com/vrcgroup/vrcgroup-cli/internal/logging"
	"github.com/vrcgroup/vrcgroup-cli/pkg/version"
)

var (
	cfg    *config.Config
	logger *slog.Logger
	debug  bool
)

// NewRootCommand builds the full command tree. Each call returns fresh
// commands so flag state never leaks between runs.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vrcgroup",
		Short: "Manage the visibility of your VRChat group memberships",
		Long: `vrcgroup lists the VRChat groups you belong to, changes how they are shown
on your profile in bulk, and picks the group you represent.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.LoadConfig()
			if err != nil {
				// Don't fail on a broken config file; `config set` must still work
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v, using defaults\n", err)
				def := config.Default()
				loaded = &def
			}
			if debug {
				loaded.Debug = true
			}
			cfg = loaded
			logger = logging.Setup(cfg.LogLevel, cfg.Debug)
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newLoginCommand())
	rootCmd.AddCommand(newLogoutCommand())
	rootCmd.AddCommand(newWhoamiCommand())
	rootCmd.AddCommand(newGroupsCommand())
	rootCmd.AddCommand(newSettingsCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newTUICommand())
	rootCmd.AddCommand(newCompletionCommand())
	rootCmd.AddCommand(newDocsCommand())

	return rootCmd
}

// Execute runs the command line and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCommand().ExecuteContext(ctx)
	stop()
	resetContainer()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", errors.FormatUserError(err))

	switch {
	case errors.IsAuthError(err):
		fmt.Fprintf(w, "\nHint: Run 'vrcgroup login' to store a valid auth token\n")
	case errors.IsRateLimited(err):
		fmt.Fprintf(w, "\nHint: VRChat is rate limiting requests, wait a few minutes before retrying\n")
	case errors.IsNetworkError(err):
		fmt.Fprintf(w, "\nHint: Check your internet connection and try again\n")
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetBuildInfo())
		},
	}
}
