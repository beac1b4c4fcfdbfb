// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package groups

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vrcgroup/vrcgroup-cli/internal/models"
)

func TestPlan(t *testing.T) {
	groups := []models.Group{
		group("grp_a", models.VisibilityVisible),
		group("grp_b", models.VisibilityHidden),
		group("grp_c", models.VisibilityFriends),
	}

	plan := Plan(groups, NewSelection("grp_c", "grp_a", "grp_b", "grp_gone"), models.VisibilityHidden)

	assert.Equal(t, []string{"grp_a", "grp_c"}, plan.Pending)
	assert.Equal(t, []string{"grp_b"}, plan.Skipped)
	assert.Equal(t, []string{"grp_gone"}, plan.Stale)
}

func TestPlan_EmptySelection(t *testing.T) {
	plan := Plan([]models.Group{group("grp_a", models.VisibilityVisible)}, NewSelection(), models.VisibilityHidden)
	assert.Empty(t, plan.Pending)
	assert.Empty(t, plan.Skipped)
	assert.Empty(t, plan.Stale)
}

func TestSelection(t *testing.T) {
	s := NewSelection("b")
	s.Set("a", true)
	s.Set("b", false)
	s.Add("c")

	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("b"))
	assert.Equal(t, []string{"a", "c"}, s.IDs())

	assert.False(t, s.Toggle("c"))
	assert.True(t, s.Toggle("c"))

	clone := s.Clone()
	clone.Remove("a")
	assert.True(t, s.Has("a"), "clone must not share storage")
	assert.Equal(t, 1, clone.Len())

	clone.Clear()
	assert.Equal(t, 0, clone.Len())
	assert.Equal(t, 2, s.Len())
}

func TestProgressTracker(t *testing.T) {
	var seen []Progress
	tracker := NewProgressTracker(3, func(p Progress) { seen = append(seen, p) })

	tracker.Credit(0)
	tracker.Credit(2)
	tracker.Credit(5)

	assert.Equal(t, []Progress{{0, 3}, {2, 3}, {3, 3}}, seen)
	assert.Equal(t, Progress{Done: 3, Total: 3}, tracker.Snapshot())
	assert.True(t, tracker.Snapshot().Complete())
}

func TestProgress_Fraction(t *testing.T) {
	assert.Equal(t, 0.0, Progress{}.Fraction())
	assert.Equal(t, 0.5, Progress{Done: 1, Total: 2}.Fraction())
	assert.False(t, Progress{}.Complete())
}
