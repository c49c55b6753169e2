package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MemoryCache stores JSON-encoded values in memory and reports misses the way
// the Redis cache does.
type MemoryCache struct {
	mu   sync.Mutex
	data map[string]cacheEntry

	Gets    int
	Sets    int
	Deletes int
}

type cacheEntry struct {
	value  []byte
	expiry time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string]cacheEntry)}
}

func (c *MemoryCache) Get(ctx context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Gets++
	entry, ok := c.data[key]
	if !ok || time.Now().After(entry.expiry) {
		return redis.Nil
	}
	return json.Unmarshal(entry.value, dest)
}

func (c *MemoryCache) Set(ctx context.Context, key string, value any, exp time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.Sets++
	c.data[key] = cacheEntry{value: data, expiry: time.Now().Add(exp)}
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Deletes++
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

// Has reports whether key holds a live entry.
func (c *MemoryCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.data[key]
	return ok && time.Now().Before(entry.expiry)
}

func (c *MemoryCache) Close() error {
	return nil
}
