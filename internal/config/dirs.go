// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "vrcgroup"

// Dir returns the directory holding config.yaml, settings.json and the
// encrypted token file. XDG_CONFIG_HOME is read on every call so tests can
// point it at a temp dir.
func Dir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, appName)
}

// File returns the path of config.yaml
func File() string {
	return filepath.Join(Dir(), "config.yaml")
}
