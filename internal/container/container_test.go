// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package container

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrcgroup/vrcgroup-cli/internal/config"
	apperrors "github.com/vrcgroup/vrcgroup-cli/internal/errors"
	"github.com/vrcgroup/vrcgroup-cli/internal/groups"
	"github.com/vrcgroup/vrcgroup-cli/internal/models"
)

const testToken = "authcookie_container_test"

func newTestContainer(t *testing.T, handler http.Handler) (*Container, *config.SecureStorage) {
	t.Helper()
	t.Setenv(config.EnvAuthToken, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.APIURL = server.URL
	storage := config.NewFileStorageAt(t.TempDir())

	c := NewContainer(&cfg, nil,
		WithSecureStorage(storage),
		WithSettingsStore(config.NewSettingsStoreAt(t.TempDir()+"/settings.json")),
		WithHTTPClient(server.Client()),
	)
	t.Cleanup(c.Close)
	return c, storage
}

func userHandler(calls *atomic.Int32) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/user" {
			http.NotFound(w, r)
			return
		}
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"usr_1","displayName":"Tester"}`))
	})
}

func TestContainer_ClientWithoutToken(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestContainer(t, userHandler(&calls))

	_, err := c.Client()
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthError(err))

	_, err = c.NewSession(groups.NopNotifier{})
	assert.Error(t, err)
}

func TestContainer_ClientIsBuiltOnce(t *testing.T) {
	var calls atomic.Int32
	c, storage := newTestContainer(t, userHandler(&calls))
	require.NoError(t, storage.SaveToken(testToken))

	first, err := c.Client()
	require.NoError(t, err)
	second, err := c.Client()
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.NotSame(t, first, c.NewClient(testToken))
}

func TestContainer_SnapshotsShareCachedUser(t *testing.T) {
	var calls atomic.Int32
	c, storage := newTestContainer(t, userHandler(&calls))
	require.NoError(t, storage.SaveToken(testToken))

	store, err := c.Snapshots(context.Background())
	require.NoError(t, err)
	require.NoError(t, store.Save([]models.Group{{ID: "grp_a", Name: "Alpha", Visibility: models.VisibilityVisible}}))

	again, err := c.Snapshots(context.Background())
	require.NoError(t, err)
	snap, err := again.Load()
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "grp_a", snap.Groups[0].ID)
	assert.Equal(t, int32(1), calls.Load(), "current user comes from the session cache")
}

func TestContainer_NewSessionUsesConfig(t *testing.T) {
	var calls atomic.Int32
	c, storage := newTestContainer(t, userHandler(&calls))
	require.NoError(t, storage.SaveToken(testToken))

	session, err := c.NewSession(groups.NopNotifier{})
	require.NoError(t, err)
	assert.Equal(t, models.VisibilityVisible, session.Target())
	assert.NotNil(t, c.Settings())

	client, err := c.Client()
	require.NoError(t, err)
	assert.Equal(t, c.Config().APIURL, client.BaseURL())
}
