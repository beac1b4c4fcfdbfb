// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package groups

import "sort"

// Selection is a set of group IDs chosen by the user
type Selection map[string]struct{}

func NewSelection(ids ...string) Selection {
	s := make(Selection, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Selection) Add(id string)    { s[id] = struct{}{} }
func (s Selection) Remove(id string) { delete(s, id) }
func (s Selection) Len() int         { return len(s) }

func (s Selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Set adds or removes id depending on checked
func (s Selection) Set(id string, checked bool) {
	if checked {
		s.Add(id)
	} else {
		s.Remove(id)
	}
}

// Toggle flips whether id is selected and reports the new state
func (s Selection) Toggle(id string) bool {
	if s.Has(id) {
		s.Remove(id)
		return false
	}
	s.Add(id)
	return true
}

func (s Selection) Clear() {
	for id := range s {
		delete(s, id)
	}
}

// IDs returns the selected IDs in sorted order
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}
