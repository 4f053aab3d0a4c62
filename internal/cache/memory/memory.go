// Package memory implements the snapshot cache in process memory with lazy
// TTL expiry: stale entries are evicted on the Get that observes them, not by
// a background sweep.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/cache"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
)

type entry struct {
	snapshot   *models.Snapshot
	insertedAt time.Time
}

type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func New(opts cache.Options) *Cache {
	return NewWithClock(opts, time.Now)
}

// NewWithClock builds a cache with an injected clock so tests can advance
// time instead of sleeping.
func NewWithClock(opts cache.Options, now func() time.Time) *Cache {
	ttl := opts.TTL
	if ttl == 0 {
		ttl = cache.DefaultOptions().TTL
	}
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     now,
	}
}

func (c *Cache) Get(ctx context.Context, key string) (*models.Snapshot, error) {
	if key == "" {
		return nil, cache.ErrInvalidKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, cache.ErrNotFound
	}
	if c.now().Sub(e.insertedAt) > c.ttl {
		delete(c.entries, key)
		return nil, cache.ErrNotFound
	}
	return e.snapshot, nil
}

func (c *Cache) Set(ctx context.Context, key string, snapshot *models.Snapshot) error {
	if key == "" {
		return cache.ErrInvalidKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{snapshot: snapshot, insertedAt: c.now()}
	return nil
}

func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
	return nil
}

func (c *Cache) Close() error {
	return nil
}
