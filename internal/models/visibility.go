// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Visibility is how publicly a group membership is shown on the user's profile
type Visibility string

const (
	VisibilityVisible Visibility = "visible"
	VisibilityFriends Visibility = "friends"
	VisibilityHidden  Visibility = "hidden"
)

// AllVisibilities lists the visibility values in display order
var AllVisibilities = []Visibility{VisibilityVisible, VisibilityFriends, VisibilityHidden}

// ParseVisibility converts user or API input into a Visibility
func ParseVisibility(s string) (Visibility, error) {
	v := Visibility(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case VisibilityVisible, VisibilityFriends, VisibilityHidden:
		return v, nil
	}
	return "", fmt.Errorf("invalid visibility '%s', must be one of: visible, friends, hidden", s)
}

func (v Visibility) String() string {
	return string(v)
}

// Label returns a human readable name
func (v Visibility) Label() string {
	switch v {
	case VisibilityVisible:
		return "Public"
	case VisibilityFriends:
		return "Friends only"
	case VisibilityHidden:
		return "Hidden"
	default:
		return string(v)
	}
}

// Next cycles visible -> friends -> hidden -> visible
func (v Visibility) Next() Visibility {
	for i, candidate := range AllVisibilities {
		if candidate == v {
			return AllVisibilities[(i+1)%len(AllVisibilities)]
		}
	}
	return VisibilityVisible
}

func (v *Visibility) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseVisibility(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
