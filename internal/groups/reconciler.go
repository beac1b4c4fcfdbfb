// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package groups

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/vrcgroup/vrcgroup-cli/internal/errors"
	"github.com/vrcgroup/vrcgroup-cli/internal/models"
	"github.com/vrcgroup/vrcgroup-cli/internal/parallel"
)

// DefaultConcurrency is the number of visibility updates kept in flight
const DefaultConcurrency = 3

// UpdateResult is the settled outcome of one visibility update
type UpdateResult struct {
	GroupID string                 `json:"groupId"`
	Success bool                   `json:"success"`
	Reason  apperrors.UpdateReason `json:"reason,omitempty"`
	Err     error                  `json:"-"`
}

// BulkOutcome summarises one Apply call
type BulkOutcome struct {
	Target  models.Visibility `json:"target"`
	Total   int               `json:"total"`
	Skipped []string          `json:"skipped,omitempty"`
	Stale   []string          `json:"stale,omitempty"`
	Results []UpdateResult    `json:"results,omitempty"`

	// RateLimited is set when at least one update failed with RATE_LIMIT
	RateLimited bool `json:"rateLimited"`

	// DispatchErr is set when the batch itself could not run to completion
	DispatchErr    error                  `json:"-"`
	DispatchReason apperrors.UpdateReason `json:"dispatchReason,omitempty"`

	// Groups is the list fetched after the batch; nil when RefreshErr is set
	Groups     []models.Group `json:"-"`
	RefreshErr error          `json:"-"`
}

// Failed returns the per-item failures
func (o *BulkOutcome) Failed() []UpdateResult {
	var failed []UpdateResult
	for _, r := range o.Results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	return failed
}

// Succeeded is the count reported to the user on a clean batch. It is the
// size of the whole selection, already-matching groups included.
func (o *BulkOutcome) Succeeded() int {
	return o.Total
}

// Reconciler moves the visibility of a set of groups to one target value
type Reconciler struct {
	svc         Service
	concurrency int
	logger      *slog.Logger
}

type ReconcilerOption func(*Reconciler)

func WithConcurrency(n int) ReconcilerOption {
	return func(r *Reconciler) {
		r.concurrency = n
	}
}

func WithLogger(logger *slog.Logger) ReconcilerOption {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewReconciler(svc Service, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		svc:         svc,
		concurrency: DefaultConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Apply sets target on every selected group that does not already have it,
// then fetches the group list again. Per-item failures are collected into
// the outcome; Apply never returns early without refreshing and never panics.
func (r *Reconciler) Apply(ctx context.Context, groups []models.Group, selection Selection, target models.Visibility, onProgress ProgressFunc) (outcome *BulkOutcome) {
	outcome = &BulkOutcome{Target: target, Total: selection.Len()}

	defer func() {
		if rec := recover(); rec != nil {
			outcome.Results = nil
			outcome.RateLimited = false
			outcome.DispatchErr = fmt.Errorf("bulk update panicked: %v", rec)
			outcome.DispatchReason = apperrors.Classify(outcome.DispatchErr)
			r.logger.Error("bulk update panicked", "panic", rec)
		}
		outcome.Groups, outcome.RefreshErr = r.svc.ListGroups(ctx)
		if outcome.RefreshErr != nil {
			r.logger.Warn("refresh after bulk update failed", "error", outcome.RefreshErr)
		}
	}()

	plan := Plan(groups, selection, target)
	outcome.Skipped, outcome.Stale = plan.Skipped, plan.Stale
	r.logger.Debug("bulk update planned",
		"target", target,
		"selected", outcome.Total,
		"pending", len(plan.Pending),
		"skipped", len(plan.Skipped),
		"stale", len(plan.Stale))

	tracker := NewProgressTracker(outcome.Total, onProgress)
	tracker.Credit(len(plan.Skipped))

	results, err := r.dispatch(ctx, plan.Pending, target, tracker)
	if err != nil {
		outcome.DispatchErr = err
		outcome.DispatchReason = apperrors.Classify(err)
		r.logger.Error("bulk update aborted", "error", err, "reason", outcome.DispatchReason)
		return outcome
	}

	outcome.Results = results
	for _, res := range results {
		if !res.Success && res.Reason == apperrors.ReasonRateLimit {
			outcome.RateLimited = true
			break
		}
	}
	return outcome
}

func (r *Reconciler) dispatch(ctx context.Context, ids []string, target models.Visibility, tracker *ProgressTracker) ([]UpdateResult, error) {
	tasks := make([]parallel.Task[UpdateResult], len(ids))
	for i, id := range ids {
		tasks[i] = func(ctx context.Context) (UpdateResult, error) {
			defer tracker.Credit(1)

			if err := r.svc.SetVisibility(ctx, id, target); err != nil {
				reason := apperrors.Classify(err)
				r.logger.Warn("visibility update failed", "group", id, "reason", reason, "error", err)
				return UpdateResult{GroupID: id, Reason: reason, Err: err}, nil
			}
			r.logger.Debug("visibility updated", "group", id, "visibility", target)
			return UpdateResult{GroupID: id, Success: true}, nil
		}
	}
	return parallel.Run(ctx, tasks, r.concurrency)
}
