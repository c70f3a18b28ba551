package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client
}

func TestRedisRateLimiter_Allow_PerMinute(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	ctx := context.Background()
	config := RateLimitConfig{RequestsPerMinute: 3}

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "bulk:ops@example.com", config)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "bulk:ops@example.com", config)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.Allow(ctx, "bulk:other@example.com", config)
	require.NoError(t, err)
	assert.True(t, allowed, "keys are independent")
}

func TestRedisRateLimiter_NoLimits(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))

	for i := 0; i < 10; i++ {
		allowed, err := limiter.Allow(context.Background(), "k", RateLimitConfig{})
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestRedisRateLimiter_CountAndReset(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	ctx := context.Background()
	config := RateLimitConfig{RequestsPerMinute: 10}

	for i := 0; i < 2; i++ {
		_, err := limiter.Allow(ctx, "k", config)
		require.NoError(t, err)
		// Members are nanosecond timestamps; keep them distinct.
		time.Sleep(time.Millisecond)
	}

	n, err := limiter.Count(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, limiter.Reset(ctx, "k"))
	n, err = limiter.Count(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
