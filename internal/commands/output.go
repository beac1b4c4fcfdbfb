// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/vrcgroup/vrcgroup-cli/internal/utils"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// consoleNotifier prints session notifications as styled lines
type consoleNotifier struct {
	out io.Writer
}

func (n consoleNotifier) Success(msg string) {
	fmt.Fprintf(n.out, "%s %s\n", successStyle.Render("✓"), msg)
}

func (n consoleNotifier) Warn(msg string) {
	fmt.Fprintf(n.out, "%s %s\n", warnStyle.Render("!"), msg)
}

func (n consoleNotifier) Error(msg string) {
	fmt.Fprintf(n.out, "%s %s\n", errorStyle.Render("✗"), msg)
}

// printPath prints a file path, noting when the file has not been written yet
func printPath(w io.Writer, path string) {
	if utils.FileExists(path) {
		fmt.Fprintln(w, path)
		return
	}
	fmt.Fprintf(w, "%s %s\n", path, dimStyle.Render("(not created yet)"))
}
