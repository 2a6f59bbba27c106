package cache

import (
	"context"
	"encoding/json"
	"time"

	"skillbridge/models"
	"skillbridge/utils"

	"github.com/go-redis/redis/v8"
)

// TutorCache stores assembled tutor cards. A miss is (nil, nil).
type TutorCache interface {
	Get(ctx context.Context, tutorID string) (*models.TutorCard, error)
	Set(ctx context.Context, card *models.TutorCard) error
	Invalidate(ctx context.Context, tutorID string) error
}

type RedisTutorCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTutorCache(client *redis.Client, ttl time.Duration) *RedisTutorCache {
	return &RedisTutorCache{client: client, ttl: ttl}
}

func (s *RedisTutorCache) Get(ctx context.Context, tutorID string) (*models.TutorCard, error) {
	data, err := s.client.Get(ctx, utils.TutorCachePrefix+tutorID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var card models.TutorCard
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *RedisTutorCache) Set(ctx context.Context, card *models.TutorCard) error {
	b, err := json.Marshal(card)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, utils.TutorCachePrefix+card.ID, b, s.ttl).Err()
}

func (s *RedisTutorCache) Invalidate(ctx context.Context, tutorID string) error {
	return s.client.Del(ctx, utils.TutorCachePrefix+tutorID).Err()
}

// NopTutorCache disables caching.
type NopTutorCache struct{}

func (NopTutorCache) Get(context.Context, string) (*models.TutorCard, error) { return nil, nil }
func (NopTutorCache) Set(context.Context, *models.TutorCard) error { return nil }
func (NopTutorCache) Invalidate(context.Context, string) error { return nil }
