// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

// UserInfo is the authenticated user as returned by /auth/user
type UserInfo struct {
	ID          string `json:"id"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"profilePicOverride,omitempty"`
}

// Name returns the best available name for display
func (u *UserInfo) Name() string {
	if u == nil {
		return ""
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.Username != "" {
		return u.Username
	}
	return u.ID
}
