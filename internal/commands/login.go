// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vrcgroup/vrcgroup-cli/internal/config"
	"github.com/vrcgroup/vrcgroup-cli/internal/utils"
)

// readSecret is swapped out in tests
var readSecret = func(in io.Reader) (string, error) {
	fd := getStdinFD()
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		if err == nil {
			return string(b), nil
		}
	}
	// Fallback to regular input if terminal read fails
	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return input, nil
}

func newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login [token]",
		Short: "Store your VRChat auth token securely",
		Long: `Store the value of your VRChat "auth" cookie. The token is verified against
the API first, then kept in the system keyring when available or in an
encrypted file as a fallback.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var token string
			if len(args) > 0 {
				token = args[0]
			} else {
				fmt.Fprint(out, "Enter your auth token: ")
				secret, err := readSecret(cmd.InOrStdin())
				fmt.Fprintln(out)
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}
				token = secret
			}
			token = strings.TrimSpace(token)

			if err := utils.ValidateTokenFormat(token); err != nil {
				return err
			}

			c := getContainer()
			user, err := c.NewClient(token).VerifyAuth(cmd.Context())
			if err != nil {
				return fmt.Errorf("invalid auth token: %w", err)
			}

			if err := c.Storage().SaveToken(token); err != nil {
				return fmt.Errorf("failed to save auth token: %w", err)
			}

			fmt.Fprintf(out, "%s Signed in as %s\n", successStyle.Render("✓"), user.Name())
			printStorage(out, c.Storage().StorageInfo())
			return nil
		},
	}
}

func newLogoutCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored auth token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if !yes {
				fmt.Fprint(out, "Are you sure you want to logout? (y/N): ")
				reader := bufio.NewReader(cmd.InOrStdin())
				response, _ := reader.ReadString('\n')
				response = strings.ToLower(strings.TrimSpace(response))
				if response != "y" && response != "yes" {
					fmt.Fprintln(out, "Logout cancelled.")
					return nil
				}
			}

			if err := getContainer().Storage().DeleteToken(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s Auth token removed from secure storage\n", successStyle.Render("✓"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user and where the token is stored",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := getContainer()
			client, err := c.Client()
			if err != nil {
				return err
			}
			user, err := client.VerifyAuth(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Signed in as %s\n", successStyle.Render("✓"), user.Name())
			fmt.Fprintf(out, "  User ID: %s\n", user.ID)
			printStorage(out, c.Storage().StorageInfo())
			return nil
		},
	}
}

func printStorage(w io.Writer, info map[string]any) {
	switch config.TokenSource(fmt.Sprint(info["source"])) {
	case config.SourceKeyring:
		fmt.Fprintf(w, "  Storage: %s (secure)\n", info["keyring_type"])
	case config.SourceEncryptedFile:
		fmt.Fprintf(w, "  Storage: Encrypted file (%s)\n", info["location"])
	case config.SourceEnvironment:
		fmt.Fprintf(w, "  Storage: Environment variable %s\n", config.EnvAuthToken)
	default:
		fmt.Fprintln(w, "  Storage: none")
	}
}
