// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// GroupSortBy represents the ways a group list can be ordered
type GroupSortBy string

const (
	SortByName        GroupSortBy = "name"
	SortByCreatedAt   GroupSortBy = "createdAt"
	SortByMemberCount GroupSortBy = "memberCount"
)

// ParseGroupSortBy validates a sort key
func ParseGroupSortBy(s string) (GroupSortBy, error) {
	switch GroupSortBy(s) {
	case SortByName, SortByCreatedAt, SortByMemberCount:
		return GroupSortBy(s), nil
	case "":
		return SortByName, nil
	}
	return "", fmt.Errorf("invalid sort '%s', must be one of: name, createdAt, memberCount", s)
}

// GroupFilter describes a search and ordering over a group list
type GroupFilter struct {
	Query      string
	Fuzzy      bool
	SortBy     GroupSortBy
	Descending bool
}

// groupNames adapts a group slice to fuzzy.Source
type groupNames []Group

func (g groupNames) String(i int) string { return g[i].Name }
func (g groupNames) Len() int            { return len(g) }

// FilterGroups returns the groups matching the filter. Substring search is
// case-insensitive on the name. Fuzzy search keeps the ranking of the matcher
// and ignores SortBy.
func FilterGroups(groups []Group, filter *GroupFilter) []Group {
	if filter == nil {
		return groups
	}

	query := strings.TrimSpace(filter.Query)
	if query != "" && filter.Fuzzy {
		matches := fuzzy.FindFrom(query, groupNames(groups))
		filtered := make([]Group, 0, len(matches))
		for _, m := range matches {
			filtered = append(filtered, groups[m.Index])
		}
		return filtered
	}

	filtered := make([]Group, 0, len(groups))
	lowered := strings.ToLower(query)
	for _, g := range groups {
		if lowered != "" && !strings.Contains(strings.ToLower(g.Name), lowered) {
			continue
		}
		filtered = append(filtered, g)
	}

	return SortGroups(filtered, filter.SortBy, !filter.Descending)
}

// SortGroups sorts a copy of groups. Groups missing the sort field go last.
func SortGroups(groups []Group, sortBy GroupSortBy, ascending bool) []Group {
	sorted := make([]Group, len(groups))
	copy(sorted, groups)

	byName := func(a, b Group) bool {
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch sortBy {
		case SortByCreatedAt:
			if a.CreatedAt == nil || b.CreatedAt == nil {
				return a.CreatedAt != nil && b.CreatedAt == nil
			}
			if ascending {
				return a.CreatedAt.Before(*b.CreatedAt)
			}
			return b.CreatedAt.Before(*a.CreatedAt)
		case SortByMemberCount:
			if a.MemberCount == nil || b.MemberCount == nil {
				return a.MemberCount != nil && b.MemberCount == nil
			}
			if ascending {
				return *a.MemberCount < *b.MemberCount
			}
			return *b.MemberCount < *a.MemberCount
		default:
			if ascending {
				return byName(a, b)
			}
			return byName(b, a)
		}
	})

	return sorted
}
