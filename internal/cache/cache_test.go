package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// backend is a Cache plus a way to move its notion of time forward.
type backend struct {
	cache   Cache
	advance func(time.Duration)
}

func backends(t *testing.T) map[string]backend {
	t.Helper()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	mem := newMemoryCache(clock.Now)
	t.Cleanup(func() { _ = mem.Close() })

	mr := miniredis.RunT(t)
	rc, err := NewRedisCache(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })

	return map[string]backend{
		"memory": {cache: mem, advance: clock.Advance},
		"redis":  {cache: rc, advance: mr.FastForward},
	}
}

func TestCache_Contract(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c := b.cache

			_, err := c.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrMiss)

			require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
			got, err := c.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "v", got)

			require.NoError(t, c.Set(ctx, "k", "v2", time.Minute))
			got, err = c.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "v2", got)

			deleted, err := c.Delete(ctx, "k")
			require.NoError(t, err)
			assert.True(t, deleted)

			deleted, err = c.Delete(ctx, "k")
			require.NoError(t, err)
			assert.False(t, deleted)

			_, err = c.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrMiss)

			assert.NoError(t, c.Ping(ctx))
		})
	}
}

func TestCache_Expiry(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c := b.cache

			require.NoError(t, c.Set(ctx, "short", "v", time.Second))
			require.NoError(t, c.Set(ctx, "long", "v", time.Hour))

			b.advance(2 * time.Second)

			_, err := c.Get(ctx, "short")
			assert.ErrorIs(t, err, ErrMiss)

			deleted, err := c.Delete(ctx, "short")
			require.NoError(t, err)
			assert.False(t, deleted)

			_, err = c.Get(ctx, "long")
			assert.NoError(t, err)
		})
	}
}

func TestJSONHelpers(t *testing.T) {
	type record struct {
		UserID string `json:"user_id"`
	}

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, SetJSON(ctx, b.cache, "j", record{UserID: "u-1"}, time.Minute))

			var got record
			require.NoError(t, GetJSON(ctx, b.cache, "j", &got))
			assert.Equal(t, "u-1", got.UserID)

			require.NoError(t, b.cache.Set(ctx, "bad", "{", time.Minute))
			assert.Error(t, GetJSON(ctx, b.cache, "bad", &got))
			assert.ErrorIs(t, GetJSON(ctx, b.cache, "none", &got), ErrMiss)
		})
	}
}

func TestMemoryCache_Sweep(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	c := newMemoryCache(clock.Now)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", "1", time.Second))
	require.NoError(t, c.Set(ctx, "b", "2", 0))
	clock.Advance(time.Minute)
	c.sweep()

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.NotContains(t, c.items, "a")
	assert.Contains(t, c.items, "b")
}

func TestMemoryCache_CloseStopsJanitor(t *testing.T) {
	c := NewMemoryCache(time.Millisecond)
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	// Nothing listens on port 1.
	_, err := NewRedisCache(context.Background(), "127.0.0.1:1")
	assert.Error(t, err)
}
