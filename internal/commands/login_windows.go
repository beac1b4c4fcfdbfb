// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows
// +build windows

package commands

import "os"

// getStdinFD returns the file descriptor for stdin on Windows systems
func getStdinFD() int {
	// syscall.Stdin is a Handle on Windows, not an int
	return int(os.Stdin.Fd())
}