package cache_test

import (
	"testing"
	"time"

	"github.com/UnknownOlympus/odyssey/internal/cache"
	"github.com/UnknownOlympus/odyssey/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T, ttl time.Duration) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})

	return cache.NewRedisCacheWithClient(rdb, ttl), srv
}

func TestRedisCache(t *testing.T) {
	ctx := t.Context()
	coords := models.Coordinates{Latitude: 49.8397, Longitude: 24.0297}

	t.Run("miss", func(t *testing.T) {
		c, _ := newRedisCache(t, time.Hour)

		got, err := c.Get(ctx, "Lviv")

		require.ErrorIs(t, err, cache.ErrMiss)
		assert.Nil(t, got)
	})

	t.Run("set then get", func(t *testing.T) {
		c, srv := newRedisCache(t, time.Hour)
		require.NoError(t, c.Set(ctx, "Lviv ", coords))

		got, err := c.Get(ctx, "LVIV")

		require.NoError(t, err)
		assert.Equal(t, coords, *got)
		assert.True(t, srv.Exists("odyssey:geocode:lviv"))
		assert.Equal(t, time.Hour, srv.TTL("odyssey:geocode:lviv"))
	})

	t.Run("entry expires", func(t *testing.T) {
		c, srv := newRedisCache(t, time.Minute)
		require.NoError(t, c.Set(ctx, "Lviv", coords))

		srv.FastForward(2 * time.Minute)
		_, err := c.Get(ctx, "Lviv")

		require.ErrorIs(t, err, cache.ErrMiss)
	})

	t.Run("corrupted value", func(t *testing.T) {
		c, srv := newRedisCache(t, time.Minute)
		require.NoError(t, srv.Set("odyssey:geocode:lviv", "not json"))

		_, err := c.Get(ctx, "Lviv")

		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to decode cached coordinates")
	})

	t.Run("server unavailable", func(t *testing.T) {
		c, srv := newRedisCache(t, time.Minute)
		srv.Close()

		_, err := c.Get(ctx, "Lviv")
		require.Error(t, err)
		require.NotErrorIs(t, err, cache.ErrMiss)

		require.Error(t, c.Set(ctx, "Lviv", coords))
		require.Error(t, c.Ping(ctx))
	})
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := cache.NewRedisCache("://bad", time.Minute)

	require.ErrorContains(t, err, "failed to parse redis url")
}
