package econ_test

import (
	"context"
	"testing"
	"time"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := econ.NewNoOpCache()
	ctx := context.Background()

	err := cache.Set(ctx, "test-key", &econ.CacheEntry{Data: []byte("x")})
	require.NoError(t, err)

	_, err = cache.Get(ctx, "test-key")
	require.ErrorIs(t, err, econ.ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "test-key"))
	assert.NoError(t, cache.Delete(ctx, "test-key"))
	assert.NoError(t, cache.Clear(ctx))
}

func TestCacheBuilder(t *testing.T) {
	t.Parallel()

	cache, err := econ.NewCacheBuilder().
		WithType(econ.CacheTypeMemory).
		WithMaxSize(50).
		WithOptions(&econ.CacheOptions{TTL: 10 * time.Minute, MaxSize: 50, EnableETags: true}).
		Build()
	require.NoError(t, err)
	require.NotNil(t, cache)

	ctx := context.Background()
	entry := &econ.CacheEntry{Data: []byte("builder test"), ExpiresAt: time.Now().Add(time.Hour)}

	require.NoError(t, cache.Set(ctx, "builder-key", entry))

	retrieved, err := cache.Get(ctx, "builder-key")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
}

func TestCacheChain(t *testing.T) {
	t.Parallel()

	l1Cache := econ.NewMemoryCache(10)
	l2Cache := econ.NewMemoryCache(100)
	chain := econ.NewCacheChain(l1Cache, l2Cache)

	ctx := context.Background()
	entry := &econ.CacheEntry{Data: []byte("chain test"), ExpiresAt: time.Now().Add(time.Hour)}

	require.NoError(t, chain.Set(ctx, "chain-key", entry))
	assert.True(t, l1Cache.Has(ctx, "chain-key"))
	assert.True(t, l2Cache.Has(ctx, "chain-key"))

	require.NoError(t, l1Cache.Delete(ctx, "chain-key"))

	// Served from L2 and copied back into L1.
	retrieved, err := chain.Get(ctx, "chain-key")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
	assert.True(t, l1Cache.Has(ctx, "chain-key"))

	require.NoError(t, chain.Delete(ctx, "chain-key"))
	assert.False(t, chain.Has(ctx, "chain-key"))

	_, err = chain.Get(ctx, "chain-key")
	require.ErrorIs(t, err, econ.ErrKeyNotFoundInAnyCache)
}

func TestNewCacheFromConfig(t *testing.T) {
	t.Parallel()

	cache, err := econ.NewCacheFromConfig(nil)
	require.NoError(t, err)
	assert.IsType(t, &econ.MemoryCache{}, cache)

	cache, err = econ.NewCacheFromConfig(&econ.CacheConfig{Type: econ.CacheTypeNone})
	require.NoError(t, err)
	assert.IsType(t, &econ.NoOpCache{}, cache)

	_, err = econ.NewCacheFromConfig(&econ.CacheConfig{Type: econ.CacheTypeNATS})
	require.ErrorIs(t, err, econ.ErrNATSConfigRequired)

	cache, err = econ.NewCacheFromConfig(&econ.CacheConfig{Type: econ.CacheType("invalid")})
	require.ErrorIs(t, err, econ.ErrUnsupportedCacheType)
	assert.Nil(t, cache)
}

func TestParseCacheType(t *testing.T) {
	t.Parallel()

	for input, expected := range map[string]econ.CacheType{
		"":       econ.CacheTypeNone,
		"none":   econ.CacheTypeNone,
		"Memory": econ.CacheTypeMemory,
		" nats ": econ.CacheTypeNATS,
	} {
		actual, err := econ.ParseCacheType(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, actual, input)
	}

	_, err := econ.ParseCacheType("redis")
	require.ErrorIs(t, err, econ.ErrUnsupportedCacheType)
}
