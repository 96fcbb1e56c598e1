package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"

	"github.com/Fukolomka/Sitea/internal/domain"
)

// Cache stores catalog reads. A miss is (nil, false, nil); errors are
// reported separately so callers can fall back to the store.
type Cache interface {
	GetCases(ctx context.Context) ([]domain.Case, bool, error)
	SetCases(ctx context.Context, cases []domain.Case) error
	GetCase(ctx context.Context, caseID string) (*domain.Case, bool, error)
	SetCase(ctx context.Context, c *domain.Case) error
	Invalidate(ctx context.Context) error
}

// cachedEntry wraps cached cases with version metadata for invalidation
type cachedEntry struct {
	Version  string        `json:"version"`
	Cases    []domain.Case `json:"cases"`
	CachedAt time.Time     `json:"cached_at"`
}

func newEntry(cases []domain.Case) *cachedEntry {
	return &cachedEntry{Version: CacheSchemaVersion, Cases: cloneCases(cases), CachedAt: time.Now()}
}

func cloneCases(cases []domain.Case) []domain.Case {
	out := make([]domain.Case, len(cases))
	for i := range cases {
		out[i] = cloneCase(&cases[i])
	}
	return out
}

func cloneCase(c *domain.Case) domain.Case {
	cp := *c
	cp.Items = append([]domain.CaseItem(nil), c.Items...)
	return cp
}

// memoryCache keeps catalog reads in an in-process LRU with expiry.
type memoryCache struct {
	lru *expirable.LRU[string, *cachedEntry]
}

// NewMemoryCache creates an LRU-backed cache.
func NewMemoryCache(size int, ttl time.Duration) Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &memoryCache{lru: expirable.NewLRU[string, *cachedEntry](size, nil, ttl)}
}

func (c *memoryCache) get(key string) ([]domain.Case, bool) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return nil, false
	}
	return cloneCases(entry.Cases), true
}

func (c *memoryCache) GetCases(ctx context.Context) ([]domain.Case, bool, error) {
	cases, ok := c.get(redisKeyCases)
	return cases, ok, nil
}

func (c *memoryCache) SetCases(ctx context.Context, cases []domain.Case) error {
	c.lru.Add(redisKeyCases, newEntry(cases))
	return nil
}

func (c *memoryCache) GetCase(ctx context.Context, caseID string) (*domain.Case, bool, error) {
	cases, ok := c.get(redisKeyCase + caseID)
	if !ok || len(cases) != 1 {
		return nil, false, nil
	}
	return &cases[0], true, nil
}

func (c *memoryCache) SetCase(ctx context.Context, cs *domain.Case) error {
	c.lru.Add(redisKeyCase+cs.ID, newEntry([]domain.Case{*cs}))
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context) error {
	c.lru.Purge()
	return nil
}

// redisCache shares catalog reads between instances through Redis.
type redisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed cache. Keys live under RedisKeyPrefix.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) get(ctx context.Context, key string) ([]domain.Case, bool, error) {
	data, err := c.client.Get(ctx, RedisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var entry cachedEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false, fmt.Errorf(ErrMsgDecodeCacheFailed, err)
	}
	if entry.Version != CacheSchemaVersion {
		return nil, false, nil
	}
	return entry.Cases, true, nil
}

func (c *redisCache) set(ctx context.Context, key string, cases []domain.Case) error {
	data, err := json.Marshal(newEntry(cases))
	if err != nil {
		return fmt.Errorf(ErrMsgEncodeCacheFailed, err)
	}
	return c.client.Set(ctx, RedisKeyPrefix+key, data, c.ttl).Err()
}

func (c *redisCache) GetCases(ctx context.Context) ([]domain.Case, bool, error) {
	return c.get(ctx, redisKeyCases)
}

func (c *redisCache) SetCases(ctx context.Context, cases []domain.Case) error {
	return c.set(ctx, redisKeyCases, cases)
}

func (c *redisCache) GetCase(ctx context.Context, caseID string) (*domain.Case, bool, error) {
	cases, ok, err := c.get(ctx, redisKeyCase+caseID)
	if err != nil || !ok || len(cases) != 1 {
		return nil, false, err
	}
	return &cases[0], true, nil
}

func (c *redisCache) SetCase(ctx context.Context, cs *domain.Case) error {
	return c.set(ctx, redisKeyCase+cs.ID, []domain.Case{*cs})
}

// Invalidate deletes every key under the catalog prefix.
func (c *redisCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, RedisKeyPrefix+"*", redisScanCount).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf(ErrMsgInvalidateFailed, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf(ErrMsgInvalidateFailed, err)
	}
	return nil
}
