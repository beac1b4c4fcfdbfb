// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

// Environment variable constants
const (
	// EnvAuthToken is the environment variable for the VRChat auth cookie value
	EnvAuthToken = "VRCGROUP_AUTH_TOKEN"

	// EnvAPIURL is the environment variable for the API base URL
	EnvAPIURL = "VRCGROUP_API_URL"

	// EnvDebug is the environment variable for debug mode
	EnvDebug = "VRCGROUP_DEBUG"

	// EnvConcurrency is the environment variable for the bulk update concurrency
	EnvConcurrency = "VRCGROUP_CONCURRENCY"

	// EnvLogLevel is the environment variable for the log level
	EnvLogLevel = "VRCGROUP_LOG_LEVEL"

	envPrefix = "VRCGROUP"
)
