// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package groups

import "github.com/vrcgroup/vrcgroup-cli/internal/models"

// DiffPlan splits a selection by what a bulk update has to do with it
type DiffPlan struct {
	// Pending groups differ from the target and need a remote call
	Pending []string
	// Skipped groups already have the target visibility
	Skipped []string
	// Stale IDs are selected but no longer in the group list
	Stale []string
}

// Plan diffs the selection against the current group list
func Plan(groups []models.Group, selection Selection, target models.Visibility) DiffPlan {
	index := models.GroupIndex(groups)

	var plan DiffPlan
	for _, id := range selection.IDs() {
		group, ok := index[id]
		switch {
		case !ok:
			plan.Stale = append(plan.Stale, id)
		case group.Visibility == target:
			plan.Skipped = append(plan.Skipped, id)
		default:
			plan.Pending = append(plan.Pending, id)
		}
	}
	return plan
}
