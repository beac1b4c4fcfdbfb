// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"github.com/vrcgroup/vrcgroup-cli/internal/config"
	"github.com/vrcgroup/vrcgroup-cli/internal/container"
)

var (
	appContainer *container.Container

	// containerOptions are applied when the container is first built
	containerOptions []container.Option
)

// getContainer returns the application container, creating it if necessary
func getContainer() *container.Container {
	if appContainer == nil {
		if cfg == nil {
			def := config.Default()
			cfg = &def
		}
		appContainer = container.NewContainer(cfg, logger, containerOptions...)
	}
	return appContainer
}

// resetContainer resets the container (useful for testing)
func resetContainer() {
	if appContainer != nil {
		appContainer.Close()
	}
	appContainer = nil
}
