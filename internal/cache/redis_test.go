package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fjod/swiftrail/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cache, mr, cleanup
}

func sampleTrips() []domain.Trip {
	return []domain.Trip{
		{TrainRef: "TR12", Departure: "Paris", Arrival: "Lyon", Date: "2025-04-10", Time: "08:30", Length: 120, Price: decimal.RequireFromString("50")},
		{TrainRef: "TR7", Departure: "Paris", Arrival: "Lyon", Date: "2025-04-10", Time: "17:05", Length: 95, Price: decimal.RequireFromString("74.5")},
	}
}

func TestGet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	data, err := json.Marshal(sampleTrips())
	require.NoError(t, err)
	require.NoError(t, mr.Set(cacheKey("Paris", "Lyon", "2025-04-10"), string(data)))

	trips, err := cache.Get(context.Background(), "Paris", "Lyon", "2025-04-10")
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, "TR12", trips[0].TrainRef)
	assert.True(t, decimal.RequireFromString("74.5").Equal(trips[1].Price))
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	trips, err := cache.Get(context.Background(), "Paris", "Lyon", "2025-04-10")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, trips)
}

func TestGet_CorruptedData(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, mr.Set(cacheKey("Paris", "Lyon", "2025-04-10"), "{not json"))

	_, err := cache.Get(context.Background(), "Paris", "Lyon", "2025-04-10")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestGet_RedisDown(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	mr.Close()

	_, err := cache.Get(context.Background(), "Paris", "Lyon", "2025-04-10")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestSet_StoresWithTTL(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "Paris", "Lyon", "2025-04-10", sampleTrips()))

	key := cacheKey("Paris", "Lyon", "2025-04-10")
	assert.True(t, mr.Exists(key))
	ttl := mr.TTL(key)
	assert.GreaterOrEqual(t, ttl, 10*time.Minute)
	assert.Less(t, ttl, 13*time.Minute)

	trips, err := cache.Get(ctx, "Paris", "Lyon", "2025-04-10")
	require.NoError(t, err)
	assert.Len(t, trips, 2)
}

func TestSet_Expires(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "Paris", "Lyon", "2025-04-10", sampleTrips()))
	mr.FastForward(13 * time.Minute)

	_, err := cache.Get(ctx, "Paris", "Lyon", "2025-04-10")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestDelete(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "Paris", "Lyon", "2025-04-10", sampleTrips()))
	require.NoError(t, cache.Delete(ctx, "Paris", "Lyon", "2025-04-10"))

	assert.False(t, mr.Exists(cacheKey("Paris", "Lyon", "2025-04-10")))
	// Deleting a missing key is not an error.
	assert.NoError(t, cache.Delete(ctx, "Nice", "Lyon", "2025-04-10"))
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "trips:Paris Gare de Lyon:Lyon:2025-04-10", cacheKey("Paris Gare de Lyon", "Lyon", "2025-04-10"))
	assert.NotEqual(t, cacheKey("paris", "Lyon", "2025-04-10"), cacheKey("Paris", "Lyon", "2025-04-10"))
}
