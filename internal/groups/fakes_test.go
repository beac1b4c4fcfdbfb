// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package groups

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vrcgroup/vrcgroup-cli/internal/models"
)

// fakeService is an in-memory Service that applies updates to its own list
type fakeService struct {
	mu       sync.Mutex
	groups   []models.Group
	failures map[string]error
	panics   map[string]any
	delay    time.Duration
	listErr  error

	updated   []string
	listCalls atomic.Int32
	inFlight  atomic.Int32
	peak      atomic.Int32
}

func newFakeService(groups ...models.Group) *fakeService {
	return &fakeService{
		groups:   groups,
		failures: map[string]error{},
		panics:   map[string]any{},
	}
}

func (f *fakeService) ListGroups(ctx context.Context) ([]models.Group, error) {
	f.listCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return models.CloneGroups(f.groups), nil
}

func (f *fakeService) SetVisibility(ctx context.Context, groupID string, visibility models.Visibility) error {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, groupID)
	if v, ok := f.panics[groupID]; ok {
		panic(v)
	}
	if err, ok := f.failures[groupID]; ok {
		return err
	}
	for i := range f.groups {
		if f.groups[i].ID == groupID {
			f.groups[i].Visibility = visibility
		}
	}
	return nil
}

func (f *fakeService) SetRepresentation(ctx context.Context, groupID string, representing bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groups = ApplyRepresentation(f.groups, groupID, representing)
	return nil
}

func (f *fakeService) updatedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.updated...)
}

// mockService is a testify mock used where call expectations matter
type mockService struct {
	mock.Mock
}

func (m *mockService) ListGroups(ctx context.Context) ([]models.Group, error) {
	args := m.Called(ctx)
	if groups := args.Get(0); groups != nil {
		return groups.([]models.Group), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) SetVisibility(ctx context.Context, groupID string, visibility models.Visibility) error {
	args := m.Called(ctx, groupID, visibility)
	return args.Error(0)
}

func (m *mockService) SetRepresentation(ctx context.Context, groupID string, representing bool) error {
	args := m.Called(ctx, groupID, representing)
	return args.Error(0)
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	warnings  []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Warn(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = append(n.warnings, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

// memoryStore is a plain GroupStore
type memoryStore struct {
	mu     sync.Mutex
	groups []models.Group
	writes [][]models.Group
}

func (s *memoryStore) Groups() []models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneGroups(s.groups)
}

func (s *memoryStore) SetGroups(groups []models.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = models.CloneGroups(groups)
	s.writes = append(s.writes, models.CloneGroups(groups))
}

func group(id string, vis models.Visibility) models.Group {
	return models.Group{ID: id, Name: "Group " + id, Visibility: vis}
}
