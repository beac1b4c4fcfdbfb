// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package groups

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/vrcgroup/vrcgroup-cli/internal/models"
)

// Session is the in-memory state behind one management screen: the group
// list, the user's selection, the target visibility, bulk progress and the
// representation mode flag.
type Session struct {
	svc        Service
	reconciler *Reconciler
	toggle     *Toggle
	notifier   Notifier
	logger     *slog.Logger

	mu            sync.Mutex
	groups        []models.Group
	selection     Selection
	target        models.Visibility
	progress      *Progress
	bulkBusy      bool
	toggling      bool
	loading       bool
	representMode bool
}

type SessionOption func(*Session)

func WithNotifier(n Notifier) SessionOption {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSessionConcurrency sets how many visibility updates run at once
func WithSessionConcurrency(n int) SessionOption {
	return func(s *Session) {
		s.reconciler.concurrency = n
	}
}

func NewSession(svc Service, opts ...SessionOption) *Session {
	s := &Session{
		svc:        svc,
		reconciler: NewReconciler(svc),
		notifier:   NopNotifier{},
		logger:     slog.Default(),
		selection:  NewSelection(),
		target:     models.VisibilityVisible,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reconciler.logger = s.logger
	s.toggle = NewToggle(svc, s.logger)
	return s
}

// Refresh replaces the group list with the remote one
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.toggling {
		s.mu.Unlock()
		return ErrTogglePending
	}
	if s.loading {
		s.mu.Unlock()
		return ErrLoading
	}
	s.loading = true
	s.mu.Unlock()

	groups, err := s.svc.ListGroups(ctx)

	s.mu.Lock()
	s.loading = false
	if err == nil {
		s.groups = groups
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("failed to load groups", "error", err)
		s.notifier.Error("Failed to load groups")
		return fmt.Errorf("load groups: %w", err)
	}
	s.logger.Debug("groups loaded", "count", len(groups))
	return nil
}

// Groups returns a deep copy of the current group list
func (s *Session) Groups() []models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneGroups(s.groups)
}

// SetGroups replaces the group list
func (s *Session) SetGroups(groups []models.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = models.CloneGroups(groups)
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Busy reports whether a bulk update is running
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bulkBusy
}

// Selection returns a copy of the selected IDs
func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Clone()
}

// Select checks or unchecks one group
func (s *Session) Select(groupID string, checked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.selectableLocked(); err != nil {
		return err
	}
	s.selection.Set(groupID, checked)
	return nil
}

// SelectAll checks every listed group, or clears the selection
func (s *Session) SelectAll(checked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.selectableLocked(); err != nil {
		return err
	}
	s.selection.Clear()
	if checked {
		for _, g := range s.groups {
			s.selection.Add(g.ID)
		}
	}
	return nil
}

// ClearSelection empties the selection regardless of mode
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
}

// ToggleSelected flips whether one group is selected and reports the new state
func (s *Session) ToggleSelected(groupID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.selectableLocked(); err != nil {
		return false, err
	}
	return s.selection.Toggle(groupID), nil
}

func (s *Session) selectableLocked() error {
	if s.bulkBusy {
		return ErrBusy
	}
	if s.representMode {
		return ErrRepresentMode
	}
	return nil
}

func (s *Session) Target() models.Visibility {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

func (s *Session) SetTarget(v models.Visibility) error {
	parsed, err := models.ParseVisibility(string(v))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bulkBusy {
		return ErrBusy
	}
	s.target = parsed
	return nil
}

// Progress returns the current bulk progress; ok is false when idle
func (s *Session) Progress() (p Progress, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.progress == nil {
		return Progress{}, false
	}
	return *s.progress, true
}

func (s *Session) RepresentMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.representMode
}

// SetRepresentMode switches representation mode and clears the selection
func (s *Session) SetRepresentMode(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.toggling {
		return ErrTogglePending
	}
	if s.bulkBusy {
		return ErrBusy
	}
	s.representMode = on
	s.selection.Clear()
	return nil
}

// TogglePending reports whether a representation change is in flight
func (s *Session) TogglePending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toggling
}

// BulkUpdate applies the target visibility to the selection. Whatever
// happens during the batch, the group list is refreshed and selection,
// progress and the busy flag are reset before it returns.
func (s *Session) BulkUpdate(ctx context.Context, onProgress ProgressFunc) (*BulkOutcome, error) {
	s.mu.Lock()
	if s.bulkBusy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if s.toggling {
		s.mu.Unlock()
		return nil, ErrTogglePending
	}
	if s.representMode {
		s.mu.Unlock()
		return nil, ErrRepresentMode
	}
	if s.selection.Len() == 0 {
		s.mu.Unlock()
		s.notifier.Error("Select at least one group")
		return nil, ErrEmptySelection
	}
	s.bulkBusy = true
	groups := models.CloneGroups(s.groups)
	selection := s.selection.Clone()
	target := s.target
	s.progress = &Progress{Total: selection.Len()}
	s.mu.Unlock()

	var outcome *BulkOutcome
	defer func() {
		s.mu.Lock()
		if outcome != nil && outcome.RefreshErr == nil {
			s.groups = outcome.Groups
		}
		s.selection.Clear()
		s.progress = nil
		s.bulkBusy = false
		s.mu.Unlock()
	}()

	outcome = s.reconciler.Apply(ctx, groups, selection, target, func(p Progress) {
		s.mu.Lock()
		if s.progress != nil && p.Done >= s.progress.Done {
			s.progress = &p
		}
		s.mu.Unlock()
		if onProgress != nil {
			onProgress(p)
		}
	})

	s.report(outcome)
	return outcome, nil
}

func (s *Session) report(outcome *BulkOutcome) {
	switch {
	case outcome.DispatchErr != nil:
		s.notifier.Error(fmt.Sprintf("An error occurred during the update: %s", outcome.DispatchReason))
	case outcome.RateLimited:
		s.notifier.Warn("Some updates were rate limited. Please wait a while and try again.")
	default:
		s.notifier.Success(fmt.Sprintf("Updated %d groups", outcome.Succeeded()))
		if failed := outcome.Failed(); len(failed) > 0 {
			s.notifier.Warn(fmt.Sprintf("%d of %d updates failed (%s)", len(failed), outcome.Total, joinReasons(failed)))
		}
	}
	if outcome.RefreshErr != nil {
		s.notifier.Error("Failed to load groups")
	}
}

func joinReasons(results []UpdateResult) string {
	seen := make(map[string]bool)
	var reasons []string
	for _, r := range results {
		name := r.Reason.String()
		if !seen[name] {
			seen[name] = true
			reasons = append(reasons, name)
		}
	}
	return strings.Join(reasons, ", ")
}

// ToggleRepresentation flips whether groupID is the represented group
func (s *Session) ToggleRepresentation(ctx context.Context, groupID string) (*ToggleResult, error) {
	s.mu.Lock()
	if s.bulkBusy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if s.toggling {
		s.mu.Unlock()
		return nil, ErrTogglePending
	}
	s.toggling = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.toggling = false
		s.mu.Unlock()
	}()

	result, err := s.toggle.Run(ctx, s, groupID)
	switch {
	case result == nil:
		return nil, err
	case err != nil:
		s.notifier.Error("Failed to update. The previous state has been restored.")
		return result, err
	}
	s.notifier.Success("Updated the representation setting for this group.")
	return result, nil
}
