// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/vrcgroup/vrcgroup-cli/internal/models"
)

const (
	// UserTTL is how long the authenticated user is reused before /auth/user is called again
	UserTTL = 5 * time.Minute

	keyCurrentUser = "user:current"
)

// SessionCache provides in-memory caching with TTL for data that is
// expensive to fetch on every call
type SessionCache struct {
	cache *ttlcache.Cache[string, any]
	// Note: ttlcache is thread-safe, no additional mutex needed
}

// NewSessionCache creates a new memory-based cache for session data
func NewSessionCache() *SessionCache {
	cache := ttlcache.New[string, any](
		ttlcache.WithCapacity[string, any](100),
		ttlcache.WithDisableTouchOnHit[string, any](),
	)

	go cache.Start()

	return &SessionCache{cache: cache}
}

// GetUser returns the cached authenticated user
func (s *SessionCache) GetUser() (*models.UserInfo, bool) {
	item := s.cache.Get(keyCurrentUser)
	if item == nil {
		return nil, false
	}
	user, ok := item.Value().(models.UserInfo)
	if !ok {
		return nil, false
	}
	return &user, true
}

// SetUser caches the authenticated user for UserTTL
func (s *SessionCache) SetUser(user models.UserInfo) {
	s.cache.Set(keyCurrentUser, user, UserTTL)
}

// InvalidateUser drops the cached user, e.g. after the token changes
func (s *SessionCache) InvalidateUser() {
	s.cache.Delete(keyCurrentUser)
}

// Clear removes all cached data
func (s *SessionCache) Clear() {
	s.cache.DeleteAll()
}

// Stop stops the expiry loop
func (s *SessionCache) Stop() {
	s.cache.Stop()
}
