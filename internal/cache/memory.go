package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string]memoryEntry
	now   func() time.Time

	stop chan struct{}
	once sync.Once
}

// NewMemoryCache returns a process-local cache. Expired keys are dropped on
// access and by a janitor running every cleanupInterval until Close.
func NewMemoryCache(cleanupInterval time.Duration) Cache {
	c := newMemoryCache(time.Now)
	go c.janitor(cleanupInterval)
	return c
}

func newMemoryCache(now func() time.Time) *memoryCache {
	return &memoryCache{
		items: make(map[string]memoryEntry),
		now:   now,
		stop:  make(chan struct{}),
	}
}

func (c *memoryCache) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}

func (c *memoryCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, e := range c.items {
		if e.expired(now) {
			delete(c.items, k)
		}
	}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return "", ErrMiss
	}
	if e.expired(c.now()) {
		delete(c.items, key)
		return "", ErrMiss
	}
	return e.value, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := memoryEntry{value: value}
	if expiration > 0 {
		e.expiresAt = c.now().Add(expiration)
	}
	c.items[key] = e
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return false, nil
	}
	delete(c.items, key)
	return !e.expired(c.now()), nil
}

func (c *memoryCache) Ping(context.Context) error { return nil }

func (c *memoryCache) Close() error {
	c.once.Do(func() { close(c.stop) })
	return nil
}
