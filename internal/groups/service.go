// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package groups

import (
	"context"
	"errors"

	"github.com/vrcgroup/vrcgroup-cli/internal/models"
)

// Service is the remote group capability the engine drives
type Service interface {
	ListGroups(ctx context.Context) ([]models.Group, error)
	SetVisibility(ctx context.Context, groupID string, visibility models.Visibility) error
	SetRepresentation(ctx context.Context, groupID string, representing bool) error
}

// Notifier receives user-facing messages produced by a Session
type Notifier interface {
	Success(msg string)
	Warn(msg string)
	Error(msg string)
}

// NopNotifier drops every message
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Warn(string)    {}
func (NopNotifier) Error(string)   {}

var (
	ErrBusy           = errors.New("a bulk update is already in progress")
	ErrLoading        = errors.New("groups are already loading")
	ErrEmptySelection = errors.New("no groups selected")
	ErrRepresentMode  = errors.New("not available in represent mode")
	ErrTogglePending  = errors.New("a representation change is already pending")
	ErrGroupNotFound  = errors.New("group not found")
)
