// Package cache implements the small TTL + key-based cache the system
// keeps for featured-company listings and filter-options distincts
// (spec.md §5). It is Redis-backed when a client is available and
// falls back to an in-process map otherwise, so the cache layer works
// the same whether or not Redis is configured for a given deployment.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a namespaced, TTL-bounded key/value store.
type Cache struct {
	redis  *redis.Client
	prefix string

	mu    sync.RWMutex
	local map[string]entry
}

type entry struct {
	value   []byte
	expires time.Time
}

// New builds a Cache. rdb may be nil, in which case the cache operates
// entirely in process memory.
func New(rdb *redis.Client, prefix string) *Cache {
	return &Cache{
		redis:  rdb,
		prefix: prefix,
		local:  make(map[string]entry),
	}
}

func (c *Cache) key(key string) string {
	return c.prefix + ":" + key
}

// Get unmarshals the cached value for key into dest. It returns
// (false, nil) on a clean miss.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	fullKey := c.key(key)

	if c.redis != nil {
		raw, err := c.redis.Get(ctx, fullKey).Bytes()
		if err == redis.Nil {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, json.Unmarshal(raw, dest)
	}

	c.mu.RLock()
	e, ok := c.local[fullKey]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expires) {
		return false, nil
	}
	return true, json.Unmarshal(e.value, dest)
}

// Set stores value under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	fullKey := c.key(key)

	if c.redis != nil {
		return c.redis.Set(ctx, fullKey, raw, ttl).Err()
	}

	c.mu.Lock()
	c.local[fullKey] = entry{value: raw, expires: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Invalidate drops key so the next Get is a clean miss. Mutation paths
// that affect a cached payload call this before acknowledging the
// write, per spec.md §5.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	fullKey := c.key(key)

	if c.redis != nil {
		return c.redis.Del(ctx, fullKey).Err()
	}

	c.mu.Lock()
	delete(c.local, fullKey)
	c.mu.Unlock()
	return nil
}

// InvalidatePrefix drops every in-process key sharing keyPrefix; used
// when a mutation invalidates a family of cache keys (e.g. every
// limit-bounded featured-company listing). Redis-backed caches rely on
// short TTLs instead of a SCAN-based bulk delete, keeping the hot write
// path free of an O(keyspace) operation.
func (c *Cache) InvalidatePrefix(ctx context.Context, keyPrefix string) error {
	if c.redis != nil {
		return nil
	}
	full := c.key(keyPrefix)
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.local {
		if len(k) >= len(full) && k[:len(full)] == full {
			delete(c.local, k)
		}
	}
	return nil
}
