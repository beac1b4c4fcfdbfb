// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/vrcgroup/vrcgroup-cli/internal/models"
	"github.com/vrcgroup/vrcgroup-cli/internal/utils"
)

const settingsFile = "settings.json"

// SettingsStore persists user preferences as JSON
type SettingsStore struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewSettingsStore creates a store for settings.json in the config dir
func NewSettingsStore() *SettingsStore {
	return NewSettingsStoreAt(filepath.Join(Dir(), settingsFile))
}

// NewSettingsStoreAt creates a store backed by path
func NewSettingsStoreAt(path string) *SettingsStore {
	return &SettingsStore{path: path, logger: slog.Default()}
}

func (s *SettingsStore) Path() string {
	return s.path
}

// Load reads the settings. A missing file yields the defaults; so does a
// file that cannot be parsed, after logging a warning. Fields absent from
// the file keep their default values.
func (s *SettingsStore) Load() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *SettingsStore) loadLocked() (models.Settings, error) {
	settings := models.DefaultSettings()

	err := utils.ReadJSON(s.path, &settings)
	switch {
	case err == nil:
		return settings, nil
	case os.IsNotExist(err):
		s.logger.Debug("settings file not found, using defaults", "path", s.path)
		return models.DefaultSettings(), nil
	case os.IsPermission(err):
		return models.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	default:
		s.logger.Warn("failed to parse settings, using defaults", "path", s.path, "error", err)
		return models.DefaultSettings(), nil
	}
}

// Save writes settings atomically
func (s *SettingsStore) Save(settings models.Settings) error {
	if err := ValidateSettings(settings); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := utils.WriteJSONAtomic(s.path, settings, 0600); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	s.logger.Debug("settings saved", "path", s.path)
	return nil
}

// SettingKeys lists the keys accepted by Get and Set
func SettingKeys() []string {
	return []string{"check-on-startup", "include-prerelease", "language", "theme"}
}

// Get returns one setting as text
func (s *SettingsStore) Get(key string) (string, error) {
	settings, err := s.Load()
	if err != nil {
		return "", err
	}
	switch key {
	case "theme":
		return settings.UI.Theme, nil
	case "language":
		return settings.UI.Language, nil
	case "check-on-startup":
		return strconv.FormatBool(settings.Update.CheckOnStartup), nil
	case "include-prerelease":
		return strconv.FormatBool(settings.Update.IncludePrerelease), nil
	}
	return "", fmt.Errorf("unknown setting '%s'", key)
}

// Set updates one setting and saves the result
func (s *SettingsStore) Set(key, value string) (models.Settings, error) {
	s.mu.Lock()
	settings, err := s.loadLocked()
	s.mu.Unlock()
	if err != nil {
		return models.Settings{}, err
	}

	switch key {
	case "theme":
		settings.UI.Theme = value
	case "language":
		settings.UI.Language = value
	case "check-on-startup", "include-prerelease":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return models.Settings{}, fmt.Errorf("invalid value '%s' for %s: must be true or false", value, key)
		}
		if key == "check-on-startup" {
			settings.Update.CheckOnStartup = b
		} else {
			settings.Update.IncludePrerelease = b
		}
	default:
		return models.Settings{}, fmt.Errorf("unknown setting '%s'", key)
	}

	if err := s.Save(settings); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

// ValidateSettings checks enumerated setting values
func ValidateSettings(settings models.Settings) error {
	switch settings.UI.Theme {
	case "light", "dark", "system":
	default:
		return fmt.Errorf("invalid theme '%s', must be one of: light, dark, system", settings.UI.Theme)
	}
	switch settings.UI.Language {
	case "ja", "en":
	default:
		return fmt.Errorf("invalid language '%s', must be one of: ja, en", settings.UI.Language)
	}
	return nil
}
