package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/fjod/swiftrail/domain"
	"github.com/redis/go-redis/v9"
)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 10 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r RedisCache) Get(ctx context.Context, departure, arrival, date string) ([]domain.Trip, error) {
	data, err := r.client.Get(ctx, cacheKey(departure, arrival, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var trips []domain.Trip
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, fmt.Errorf("unmarshal trips failed: %w", err)
	}
	return trips, nil
}

func (r RedisCache) Set(ctx context.Context, departure, arrival, date string, trips []domain.Trip) error {
	data, err := json.Marshal(trips)
	if err != nil {
		return fmt.Errorf("marshal trips failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(3)) * time.Minute
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, cacheKey(departure, arrival, date), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r RedisCache) Delete(ctx context.Context, departure, arrival, date string) error {
	if err := r.client.Del(ctx, cacheKey(departure, arrival, date)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(departure, arrival, date string) string {
	return fmt.Sprintf("trips:%s:%s:%s", departure, arrival, date)
}
