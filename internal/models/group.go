// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import "time"

// Group is one group membership of the authenticated user
type Group struct {
	ID             string     `json:"groupId" yaml:"groupId"`
	Name           string     `json:"name" yaml:"name"`
	Description    string     `json:"description,omitempty" yaml:"description,omitempty"`
	IconURL        string     `json:"iconUrl,omitempty" yaml:"iconUrl,omitempty"`
	Visibility     Visibility `json:"memberVisibility" yaml:"memberVisibility"`
	IsRepresenting bool       `json:"isRepresenting" yaml:"isRepresenting"`
	MemberCount    *int       `json:"memberCount,omitempty" yaml:"memberCount,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// Clone returns a deep copy of the group
func (g Group) Clone() Group {
	out := g
	if g.MemberCount != nil {
		n := *g.MemberCount
		out.MemberCount = &n
	}
	if g.CreatedAt != nil {
		t := *g.CreatedAt
		out.CreatedAt = &t
	}
	return out
}

// CloneGroups deep-copies a group list; nil stays nil
func CloneGroups(groups []Group) []Group {
	if groups == nil {
		return nil
	}
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = g.Clone()
	}
	return out
}

// GroupIndex maps group IDs to their position-independent value
func GroupIndex(groups []Group) map[string]Group {
	index := make(map[string]Group, len(groups))
	for _, g := range groups {
		index[g.ID] = g
	}
	return index
}

// RepresentedGroup returns the group currently carrying the representation flag
func RepresentedGroup(groups []Group) (Group, bool) {
	for _, g := range groups {
		if g.IsRepresenting {
			return g, true
		}
	}
	return Group{}, false
}
