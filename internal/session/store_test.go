package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipes-be/internal/apperrors"
	"recipes-be/internal/cache"
)

func newRedisStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := cache.NewRedisCache(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return NewStore(c), mr
}

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	sid, err := s.Create(ctx, "u-1", time.Hour)
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]{32}$`, sid)
	assert.True(t, mr.Exists("session:"+sid))
	assert.Equal(t, time.Hour, mr.TTL("session:"+sid))

	userID, err := s.UserID(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)

	ok, err := s.Delete(ctx, sid)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.UserID(ctx, sid)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	ok, err = s.Delete(ctx, sid)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	sid, err := s.Create(ctx, "u-1", time.Minute)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = s.UserID(ctx, sid)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_DistinctIDs(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	s := NewStore(c)

	seen := make(map[string]bool)
	for range 50 {
		sid, err := s.Create(ctx, "u-1", time.Hour)
		require.NoError(t, err)
		require.False(t, seen[sid], "duplicate session id %s", sid)
		seen[sid] = true
	}
}

func TestStore_CorruptRecord(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	require.NoError(t, mr.Set("session:deadbeef", "not json"))

	_, err := s.UserID(ctx, "deadbeef")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}
