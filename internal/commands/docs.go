// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

type docsGenerator struct {
	use        string
	short      string
	defaultDir string
	generate   func(root *cobra.Command, dir string) error
}

var docsGenerators = []docsGenerator{
	{
		use:        "man",
		short:      "Generate man pages",
		defaultDir: "man",
		generate: func(root *cobra.Command, dir string) error {
			header := &doc.GenManHeader{
				Title:   "VRCGROUP",
				Section: "1",
				Manual:  "vrcgroup Manual",
				Source:  "vrcgroup-cli",
			}
			return doc.GenManTree(root, header, dir)
		},
	},
	{
		use:        "markdown",
		short:      "Generate markdown documentation",
		defaultDir: "docs/generated",
		generate:   doc.GenMarkdownTree,
	},
	{
		use:        "yaml",
		short:      "Generate YAML documentation",
		defaultDir: "yaml",
		generate:   doc.GenYamlTree,
	},
}

func newDocsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "docs",
		Short:  "Generate documentation",
		Hidden: true,
	}

	for _, g := range docsGenerators {
		cmd.AddCommand(&cobra.Command{
			Use:   g.use + " [output-dir]",
			Short: g.short,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				outputDir := g.defaultDir
				if len(args) > 0 {
					outputDir = args[0]
				}

				if err := os.MkdirAll(outputDir, 0o750); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}

				root := cmd.Root()
				root.DisableAutoGenTag = true
				if err := g.generate(root, outputDir); err != nil {
					return fmt.Errorf("failed to generate %s docs: %w", g.use, err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s %s documentation generated in %s\n", successStyle.Render("✓"), g.use, outputDir)
				return nil
			},
		})
	}

	return cmd
}
