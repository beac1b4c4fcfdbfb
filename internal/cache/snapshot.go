// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"

	"github.com/vrcgroup/vrcgroup-cli/internal/models"
	"github.com/vrcgroup/vrcgroup-cli/internal/utils"
)

const (
	snapshotVersion = 1
	appName         = "vrcgroup"
	snapshotFile    = "groups.json"
)

// GroupSnapshot is the last group list fetched for a user
type GroupSnapshot struct {
	Groups    []models.Group `json:"groups"`
	FetchedAt time.Time      `json:"fetchedAt"`
	Version   int            `json:"version"`
}

// Age returns how long ago the snapshot was fetched
func (s *GroupSnapshot) Age() time.Duration {
	return time.Since(s.FetchedAt)
}

// SnapshotStore persists the last group list per user so it can be shown
// without a network round trip
type SnapshotStore struct {
	mu  sync.RWMutex
	dir string
}

// NewSnapshotStore creates a store under the user cache directory
func NewSnapshotStore(userID string) (*SnapshotStore, error) {
	baseDir := os.Getenv("XDG_CACHE_HOME")
	if baseDir == "" {
		baseDir = xdg.CacheHome
	}
	return NewSnapshotStoreAt(filepath.Join(baseDir, appName, "users", hashUserID(userID)))
}

// NewSnapshotStoreAt creates a store rooted at dir
func NewSnapshotStoreAt(dir string) (*SnapshotStore, error) {
	if err := utils.EnsureDirectory(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &SnapshotStore{dir: dir}, nil
}

// hashUserID creates a stable hash for directory naming
func hashUserID(userID string) string {
	if userID == "" {
		return "anonymous"
	}
	h := sha256.Sum256([]byte(userID))
	return fmt.Sprintf("user-%x", h[:8])
}

func (s *SnapshotStore) path() string {
	return filepath.Join(s.dir, snapshotFile)
}

// Save stores groups as the latest snapshot
func (s *SnapshotStore) Save(groups []models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := GroupSnapshot{
		Groups:    groups,
		FetchedAt: time.Now(),
		Version:   snapshotVersion,
	}
	return utils.WriteJSONAtomic(s.path(), snap, 0600)
}

// Load returns the latest snapshot, or nil when there is none. A corrupt
// or outdated file is removed and treated as a miss.
func (s *SnapshotStore) Load() (*GroupSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snap GroupSnapshot
	if err := utils.ReadJSON(s.path(), &snap); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		_ = utils.RemoveFileIfExists(s.path())
		return nil, nil
	}

	if snap.Version != snapshotVersion {
		_ = utils.RemoveFileIfExists(s.path())
		return nil, nil
	}
	return &snap, nil
}

// Clear removes the stored snapshot
func (s *SnapshotStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return utils.RemoveFileIfExists(s.path())
}
