// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures colored structured logging with tint.
//
// The level comes from config (log_level, VRCGROUP_LOG_LEVEL). Debug mode
// forces the debug level and adds source locations. Attributes that carry
// credentials are masked before they reach the handler.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"

	"github.com/vrcgroup/vrcgroup-cli/internal/utils"
)

// sensitiveKeys are attribute keys whose values are always masked
var sensitiveKeys = map[string]bool{
	"token":         true,
	"auth_token":    true,
	"authorization": true,
	"password":      true,
}

type Options struct {
	Level   slog.Level
	Debug   bool
	NoColor bool
}

// Setup installs a tint logger on stderr as the slog default and returns it
func Setup(level string, debug bool) *slog.Logger {
	opts := Options{
		Level:   ParseLevel(level),
		Debug:   debug,
		NoColor: !term.IsTerminal(int(os.Stderr.Fd())),
	}
	logger := New(os.Stderr, opts)
	slog.SetDefault(logger)
	return logger
}

// New builds a tint logger writing to w
func New(w io.Writer, opts Options) *slog.Logger {
	level := opts.Level
	if opts.Debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:       level,
		TimeFormat:  time.Kitchen,
		AddSource:   opts.Debug,
		NoColor:     opts.NoColor,
		ReplaceAttr: redactAttr,
	}))
}

// ParseLevel maps debug, info, warn and error to slog levels; anything
// else is warn
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func redactAttr(groups []string, a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)
	switch {
	case key == "cookie":
		return slog.String(a.Key, utils.RedactCookieHeader(a.Value.String()))
	case sensitiveKeys[key]:
		return slog.String(a.Key, utils.MaskToken(a.Value.String()))
	}
	return a
}
