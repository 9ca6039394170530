package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/planekit/regiontree/pkg/cache"
)

// memCache is a minimal in-memory cache backend for runner tests.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() cache.Cache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	return data, ok, nil
}

func (c *memCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	return nil
}

func (c *memCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memCache) Close() error { return nil }
