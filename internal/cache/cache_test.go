// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrcgroup/vrcgroup-cli/internal/models"
)

func TestSessionCache_User(t *testing.T) {
	c := NewSessionCache()
	defer c.Stop()

	_, ok := c.GetUser()
	assert.False(t, ok)

	c.SetUser(models.UserInfo{ID: "usr_1", DisplayName: "Tester"})
	user, ok := c.GetUser()
	require.True(t, ok)
	assert.Equal(t, "usr_1", user.ID)

	c.InvalidateUser()
	_, ok = c.GetUser()
	assert.False(t, ok)
}

func TestSessionCache_Clear(t *testing.T) {
	c := NewSessionCache()
	defer c.Stop()

	c.SetUser(models.UserInfo{ID: "usr_1"})
	c.Clear()
	_, ok := c.GetUser()
	assert.False(t, ok)
}

func TestSnapshotStore_SaveLoad(t *testing.T) {
	store, err := NewSnapshotStoreAt(t.TempDir())
	require.NoError(t, err)

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, snap, "empty store is a miss")

	members := 12
	groups := []models.Group{{
		ID:          "grp_1",
		Name:        "Photography Club",
		Visibility:  models.VisibilityFriends,
		MemberCount: &members,
	}}
	require.NoError(t, store.Save(groups))

	snap, err = store.Load()
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, groups, snap.Groups)
	assert.Less(t, snap.Age(), time.Minute)

	require.NoError(t, store.Clear())
	snap, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSnapshotStore_CorruptFileIsDropped(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSnapshotStoreAt(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, snapshotFile)
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0600))

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, snap)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSnapshotStore_OldVersionIsDropped(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSnapshotStoreAt(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, snapshotFile), []byte(`{"groups":[],"version":0}`), 0600))

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestNewSnapshotStore_UsesCacheHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)

	store, err := NewSnapshotStore("usr_1")
	require.NoError(t, err)
	require.NoError(t, store.Save(nil))

	matches, err := filepath.Glob(filepath.Join(home, appName, "users", "user-*", snapshotFile))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestHashUserID(t *testing.T) {
	assert.Equal(t, "anonymous", hashUserID(""))
	assert.Equal(t, hashUserID("usr_1"), hashUserID("usr_1"))
	assert.NotEqual(t, hashUserID("usr_1"), hashUserID("usr_2"))
}
