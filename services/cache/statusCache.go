package cache

import (
	"context"
	"time"

	"skillbridge/models"
	"skillbridge/utils"

	"github.com/go-redis/redis/v8"
)

// StatusCache remembers account statuses for the auth middleware.
type StatusCache interface {
	// Get returns ("", nil) on a miss.
	Get(ctx context.Context, userID string) (models.UserStatus, error)
	Set(ctx context.Context, userID string, status models.UserStatus) error
	Invalidate(ctx context.Context, userID string) error
}

type RedisStatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStatusCache(client *redis.Client) *RedisStatusCache {
	return &RedisStatusCache{client: client, ttl: utils.AuthCacheTTL}
}

func (s *RedisStatusCache) Get(ctx context.Context, userID string) (models.UserStatus, error) {
	v, err := s.client.Get(ctx, utils.AuthCachePrefix+userID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return models.UserStatus(v), nil
}

func (s *RedisStatusCache) Set(ctx context.Context, userID string, status models.UserStatus) error {
	return s.client.Set(ctx, utils.AuthCachePrefix+userID, string(status), s.ttl).Err()
}

func (s *RedisStatusCache) Invalidate(ctx context.Context, userID string) error {
	return s.client.Del(ctx, utils.AuthCachePrefix+userID).Err()
}

type NopStatusCache struct{}

func (NopStatusCache) Get(context.Context, string) (models.UserStatus, error) { return "", nil }
func (NopStatusCache) Set(context.Context, string, models.UserStatus) error { return nil }
func (NopStatusCache) Invalidate(context.Context, string) error { return nil }
