// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package version

import (
	"strings"
	"testing"
)

const testVersion = "1.0.0"

func TestGetVersion(t *testing.T) {
	Version = testVersion
	if v := GetVersion(); v != testVersion {
		t.Errorf("GetVersion() = %s, want %s", v, testVersion)
	}
}

func TestUserAgent(t *testing.T) {
	Version = testVersion
	ua := UserAgent()
	if !strings.HasPrefix(ua, "vrcgroup-cli/"+testVersion+" (") {
		t.Errorf("UserAgent() = %s, want vrcgroup-cli/%s prefix", ua, testVersion)
	}
}

func TestGetBuildInfo(t *testing.T) {
	Version = testVersion
	GitCommit = "abc123"
	BuildDate = "2024-01-01"

	info := GetBuildInfo()

	for _, want := range []string{"Version: " + testVersion, "Git Commit: abc123", "Build Date: 2024-01-01", "Go Version:", "OS/Arch:"} {
		if !strings.Contains(info, want) {
			t.Errorf("build info missing %q:\n%s", want, info)
		}
	}
}
