package user

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// cachedLogin maps a Steam ID to the user it belongs to. The mapping never
// changes once a user exists, so only the schema version can make it stale.
type cachedLogin struct {
	Version  string
	UserID   string
	CachedAt time.Time
}

// loginCache provides an in-memory LRU cache for Steam ID lookups
// with time-based expiration and version-based invalidation.
type loginCache struct {
	lru *expirable.LRU[string, *cachedLogin]
}

func newLoginCache(size int, ttl time.Duration) *loginCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &loginCache{lru: expirable.NewLRU[string, *cachedLogin](size, nil, ttl)}
}

// Get returns the user ID cached for steamID. Entries written under another
// schema version are dropped.
func (c *loginCache) Get(steamID string) (string, bool) {
	entry, found := c.lru.Get(steamID)
	if !found {
		return "", false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(steamID)
		return "", false
	}
	return entry.UserID, true
}

// Set stores the mapping with the current schema version.
func (c *loginCache) Set(steamID, userID string) {
	c.lru.Add(steamID, &cachedLogin{Version: CacheSchemaVersion, UserID: userID, CachedAt: time.Now()})
}

// Invalidate removes a mapping.
func (c *loginCache) Invalidate(steamID string) {
	c.lru.Remove(steamID)
}

// Clear removes all entries from the cache.
func (c *loginCache) Clear() {
	c.lru.Purge()
}
