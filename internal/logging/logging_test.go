// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelWarn,
		"verbose": slog.LevelWarn,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: slog.LevelWarn, NoColor: true})

	logger.Info("hidden message")
	logger.Warn("shown message", "group", "grp_1")

	out := buf.String()
	assert.NotContains(t, out, "hidden message")
	assert.Contains(t, out, "shown message")
	assert.Contains(t, out, "group=grp_1")
}

func TestNew_DebugForcesDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: slog.LevelError, Debug: true, NoColor: true})

	logger.Debug("request sent")
	assert.Contains(t, buf.String(), "request sent")
}

func TestNew_RedactsCredentials(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: slog.LevelDebug, NoColor: true})

	logger.Debug("API request",
		"cookie", "auth=authcookie_0123456789",
		"token", "authcookie_0123456789",
		"group", "grp_1",
	)

	out := buf.String()
	assert.NotContains(t, out, "authcookie_0123456789")
	assert.Contains(t, out, "auth=auth*****************")
	assert.Contains(t, out, "group=grp_1")
}
