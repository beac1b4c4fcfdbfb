// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vrcgroup/vrcgroup-cli/internal/models"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("63")).
			Padding(0, 1)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "236", Dark: "252"})

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("63"))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "241"})

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "82"}).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "166", Dark: "226"}).
			Bold(true)

	RepresentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "214"}).
			Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "236", Dark: "252"}).
			Background(lipgloss.AdaptiveColor{Light: "254", Dark: "235"}).
			Padding(0, 1)
)

// ApplyTheme sets the background assumption used by adaptive colors.
// "system" keeps lipgloss' own terminal detection.
func ApplyTheme(theme string) {
	switch theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}

func visibilityStyle(v models.Visibility) lipgloss.Style {
	switch v {
	case models.VisibilityVisible:
		return SuccessStyle.Bold(false)
	case models.VisibilityFriends:
		return WarningStyle.Bold(false)
	default:
		return DimStyle
	}
}

func noticeStyle(kind NoticeKind) lipgloss.Style {
	switch kind {
	case NoticeSuccess:
		return SuccessStyle
	case NoticeWarn:
		return WarningStyle
	case NoticeError:
		return ErrorStyle
	default:
		return InfoStyle
	}
}

func noticeIcon(kind NoticeKind) string {
	switch kind {
	case NoticeSuccess:
		return "✓"
	case NoticeWarn:
		return "!"
	case NoticeError:
		return "✗"
	default:
		return "•"
	}
}
