// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

// Settings are the user preferences persisted between sessions
type Settings struct {
	UI     UISettings     `json:"ui"`
	Update UpdateSettings `json:"update"`
}

type UISettings struct {
	Theme    string `json:"theme"`    // light, dark, system
	Language string `json:"language"` // ja, en
}

type UpdateSettings struct {
	CheckOnStartup    bool `json:"checkOnStartup"`
	IncludePrerelease bool `json:"includePrerelease"`
}

// DefaultSettings returns the settings used when nothing has been saved yet
func DefaultSettings() Settings {
	return Settings{
		UI: UISettings{
			Theme:    "system",
			Language: "ja",
		},
		Update: UpdateSettings{
			CheckOnStartup:    true,
			IncludePrerelease: false,
		},
	}
}
