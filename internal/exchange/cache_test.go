package exchange

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	cache := NewMemoryCache(time.Minute, func() time.Time { return now })

	_, ok := cache.Get(ctx, "USD", "EUR")
	assert.False(t, ok)

	cache.Set(ctx, "USD", "EUR", decimal.RequireFromString("0.85"))
	rate, ok := cache.Get(ctx, "USD", "EUR")
	require.True(t, ok)
	assert.Equal(t, "0.85", rate.String())

	_, ok = cache.Get(ctx, "EUR", "USD")
	assert.False(t, ok, "directions are cached separately")

	t.Run("Expires after TTL", func(t *testing.T) {
		now = now.Add(time.Minute)
		_, ok := cache.Get(ctx, "USD", "EUR")
		assert.False(t, ok)
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("Invalidate", func(t *testing.T) {
		cache.Set(ctx, "USD", "GBP", decimal.RequireFromString("0.75"))
		require.NoError(t, cache.Invalidate(ctx, "USD", "GBP"))
		_, ok := cache.Get(ctx, "USD", "GBP")
		assert.False(t, ok)
	})

	t.Run("Reset", func(t *testing.T) {
		cache.Set(ctx, "USD", "GBP", decimal.RequireFromString("0.75"))
		cache.Set(ctx, "USD", "LKR", decimal.RequireFromString("330"))
		require.NoError(t, cache.Reset(ctx))
		assert.Equal(t, 0, cache.Len())
	})
}

func TestNewMemoryCache_Defaults(t *testing.T) {
	cache := NewMemoryCache(0, nil)
	assert.Equal(t, DefaultCacheTTL, cache.ttl)
	assert.NotNil(t, cache.now)
}
