package econ_test

import (
	"context"
	"testing"
	"time"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := econ.NewMemoryCache(10)
	ctx := context.Background()

	entry := &econ.CacheEntry{
		Data:       []byte(`{"success":true}`),
		StatusCode: 200,
		ExpiresAt:  time.Now().Add(1 * time.Hour),
		ETag:       "abc123",
	}

	err := cache.Set(ctx, "key1", entry)
	require.NoError(t, err)

	retrieved, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
	assert.Equal(t, entry.ETag, retrieved.ETag)
}

func TestMemoryCache_GetNonExistent(t *testing.T) {
	t.Parallel()

	cache := econ.NewMemoryCache(10)

	_, err := cache.Get(context.Background(), "nonexistent")
	require.ErrorIs(t, err, econ.ErrCacheKeyNotFound)
	assert.Contains(t, err.Error(), "key not found")
}

func TestMemoryCache_GetExpired(t *testing.T) {
	t.Parallel()

	cache := econ.NewMemoryCache(10)
	ctx := context.Background()

	entry := &econ.CacheEntry{
		Data:      []byte("stale"),
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	}

	err := cache.Set(ctx, "key1", entry)
	require.NoError(t, err)

	_, err = cache.Get(ctx, "key1")
	require.ErrorIs(t, err, econ.ErrCacheEntryExpired)
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	t.Parallel()

	cache := econ.NewMemoryCache(10)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		_ = cache.Set(ctx, key, &econ.CacheEntry{Data: []byte(key), ExpiresAt: time.Now().Add(time.Hour)})
	}

	require.NoError(t, cache.Delete(ctx, "a"))
	assert.False(t, cache.Has(ctx, "a"))
	assert.True(t, cache.Has(ctx, "b"))

	require.NoError(t, cache.Clear(ctx))
	assert.False(t, cache.Has(ctx, "b"))
	assert.False(t, cache.Has(ctx, "c"))
}

func TestMemoryCache_EvictsOldest(t *testing.T) {
	t.Parallel()

	cache := econ.NewMemoryCache(2)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		_ = cache.Set(ctx, key, &econ.CacheEntry{Data: []byte(key), ExpiresAt: time.Now().Add(time.Hour)})
	}

	assert.Equal(t, 2, cache.Len())
	assert.False(t, cache.Has(ctx, "a"))
	assert.True(t, cache.Has(ctx, "b"))
	assert.True(t, cache.Has(ctx, "c"))
}

func TestMemoryCache_Cleanup(t *testing.T) {
	t.Parallel()

	cache := econ.NewMemoryCache(10)
	ctx := context.Background()

	_ = cache.Set(ctx, "expired", &econ.CacheEntry{ExpiresAt: time.Now().Add(-time.Hour)})
	_ = cache.Set(ctx, "valid", &econ.CacheEntry{ExpiresAt: time.Now().Add(time.Hour)})

	cache.Cleanup()

	assert.Equal(t, 1, cache.Len())
	assert.True(t, cache.Has(ctx, "valid"))
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	key := econ.CacheKey("GET", "https://api.econ.dev/v1/shops", "key-a")
	assert.Len(t, key, 64)
	assert.Equal(t, key, econ.CacheKey("GET", "https://api.econ.dev/v1/shops", "key-a"))
	assert.NotEqual(t, key, econ.CacheKey("GET", "https://api.econ.dev/v1/shops", "key-b"))
	assert.NotEqual(t, key, econ.CacheKey("GET", "https://api.econ.dev/v1/shops?page=2", "key-a"))
}
