// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package groups

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vrcgroup/vrcgroup-cli/internal/models"
)

// ToggleState is the state of the representation toggle
type ToggleState int

const (
	ToggleIdle ToggleState = iota
	TogglePending
)

func (s ToggleState) String() string {
	if s == TogglePending {
		return "pending"
	}
	return "idle"
}

// GroupStore holds the group list a toggle writes optimistic state into
type GroupStore interface {
	Groups() []models.Group
	SetGroups(groups []models.Group)
}

// ToggleResult describes a finished toggle
type ToggleResult struct {
	GroupID      string
	Representing bool
	RolledBack   bool
}

// Toggle flips the represented group optimistically and restores the
// previous list if the remote call fails. Only one toggle may be pending.
type Toggle struct {
	svc    Service
	logger *slog.Logger

	mu    sync.Mutex
	state ToggleState
}

func NewToggle(svc Service, logger *slog.Logger) *Toggle {
	if logger == nil {
		logger = slog.Default()
	}
	return &Toggle{svc: svc, logger: logger}
}

func (t *Toggle) State() ToggleState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Toggle) Pending() bool {
	return t.State() == TogglePending
}

// Run flips the representation flag of groupID in store. The optimistic
// list is written before the remote call. On failure the pre-toggle list
// is written back and the remote error is returned alongside the result.
func (t *Toggle) Run(ctx context.Context, store GroupStore, groupID string) (*ToggleResult, error) {
	t.mu.Lock()
	if t.state == TogglePending {
		t.mu.Unlock()
		return nil, ErrTogglePending
	}

	snapshot := models.CloneGroups(store.Groups())
	var current models.Group
	found := false
	for _, g := range snapshot {
		if g.ID == groupID {
			current, found = g, true
			break
		}
	}
	if !found {
		t.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}

	t.state = TogglePending
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.state = ToggleIdle
		t.mu.Unlock()
	}()

	intended := !current.IsRepresenting
	result := &ToggleResult{GroupID: groupID, Representing: intended}

	store.SetGroups(ApplyRepresentation(snapshot, groupID, intended))

	if err := t.svc.SetRepresentation(ctx, groupID, intended); err != nil {
		t.logger.Warn("representation update failed, restoring previous state", "group", groupID, "error", err)
		store.SetGroups(snapshot)
		result.RolledBack = true
		return result, fmt.Errorf("set representation of %s: %w", groupID, err)
	}
	t.logger.Debug("representation updated", "group", groupID, "representing", intended)
	return result, nil
}

// ApplyRepresentation returns a copy of groups where only groupID carries
// the representation flag, or none does when representing is false.
func ApplyRepresentation(groups []models.Group, groupID string, representing bool) []models.Group {
	out := models.CloneGroups(groups)
	for i := range out {
		out[i].IsRepresenting = representing && out[i].ID == groupID
	}
	return out
}
