// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package container

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vrcgroup/vrcgroup-cli/internal/api"
	"github.com/vrcgroup/vrcgroup-cli/internal/cache"
	"github.com/vrcgroup/vrcgroup-cli/internal/config"
	"github.com/vrcgroup/vrcgroup-cli/internal/groups"
)

// Container holds all application dependencies
type Container struct {
	config       *config.Config
	logger       *slog.Logger
	storage      *config.SecureStorage
	settings     *config.SettingsStore
	sessionCache *cache.SessionCache
	httpClient   *http.Client
	client       *api.Client
}

// Option customises a Container
type Option func(*Container)

// WithHTTPClient replaces the HTTP client handed to the API client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Container) {
		c.httpClient = h
	}
}

// WithSecureStorage replaces the token storage
func WithSecureStorage(s *config.SecureStorage) Option {
	return func(c *Container) {
		c.storage = s
	}
}

// WithSettingsStore replaces the settings store
func WithSettingsStore(s *config.SettingsStore) Option {
	return func(c *Container) {
		c.settings = s
	}
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger, opts ...Option) *Container {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Container{
		config: cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.storage == nil {
		c.storage = config.NewSecureStorage()
	}
	if c.settings == nil {
		c.settings = config.NewSettingsStore()
	}
	c.sessionCache = cache.NewSessionCache()
	return c
}

// Config returns the application configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the application logger
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// Storage returns the token storage
func (c *Container) Storage() *config.SecureStorage {
	return c.storage
}

// Settings returns the settings store
func (c *Container) Settings() *config.SettingsStore {
	return c.settings
}

// Client returns the API client for the stored token. The client is built
// once per container.
func (c *Container) Client() (*api.Client, error) {
	if c.client != nil {
		return c.client, nil
	}
	token, err := c.storage.GetToken()
	if err != nil {
		return nil, err
	}
	c.client = c.NewClient(token)
	return c.client, nil
}

// NewClient builds an API client for an explicit token without caching it
func (c *Container) NewClient(token string) *api.Client {
	opts := []api.Option{
		api.WithLogger(c.logger),
		api.WithSessionCache(c.sessionCache),
	}
	if c.httpClient != nil {
		opts = append(opts, api.WithHTTPClient(c.httpClient))
	}
	return api.NewClient(token, c.config.APIURL, c.config.Debug, opts...)
}

// NewSession creates a group session driven by the stored token
func (c *Container) NewSession(notifier groups.Notifier) (*groups.Session, error) {
	client, err := c.Client()
	if err != nil {
		return nil, err
	}
	return groups.NewSession(client,
		groups.WithNotifier(notifier),
		groups.WithSessionLogger(c.logger),
		groups.WithSessionConcurrency(c.config.Concurrency),
	), nil
}

// Snapshots returns the group snapshot store for the authenticated user
func (c *Container) Snapshots(ctx context.Context) (*cache.SnapshotStore, error) {
	client, err := c.Client()
	if err != nil {
		return nil, err
	}
	user, err := client.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return cache.NewSnapshotStore(user.ID)
}

// Close releases background resources
func (c *Container) Close() {
	c.sessionCache.Stop()
}
