package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/config"
)

func TestRateLimiter_Allow(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	limiter := NewRateLimiter(client, config.RateLimitConfig{
		Enabled:        true,
		Capacity:       3,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		Prefix:         "rl-test",
	})
	now := time.Now()
	limiter.now = func() time.Time { return now }
	key := "user:" + uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, limiter.key(key)) })

	t.Run("容量までは許可される", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			res, err := limiter.Allow(ctx, key)
			require.NoError(t, err)
			assert.True(t, res.Allowed)
			assert.Equal(t, 2-i, res.Remaining)
			assert.Equal(t, 3, res.Limit)
		}
	})

	t.Run("容量を超えると拒否される", func(t *testing.T) {
		res, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.False(t, res.Allowed)
		assert.Equal(t, 0, res.Remaining)
		assert.Equal(t, time.Minute, res.RetryAfter)
	})

	t.Run("補充間隔の経過後は再び許可される", func(t *testing.T) {
		now = now.Add(time.Minute)

		res, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 0, res.Remaining)
	})
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	limiter := NewRateLimiter(client, config.RateLimitConfig{
		Capacity: 1, RefillTokens: 1, RefillInterval: time.Minute, TTL: time.Minute, Prefix: "rl-test",
	})
	a, b := "user:"+uuid.NewString(), "user:"+uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, limiter.key(a), limiter.key(b)) })

	res, err := limiter.Allow(ctx, a)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = limiter.Allow(ctx, a)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	res, err = limiter.Allow(ctx, b)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}
