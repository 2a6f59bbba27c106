package availability

import (
	"context"
	"time"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/services/cache"
)

// AvailabilityService manages a tutor's recurring weekly slots.
type AvailabilityService interface {
	AddSlot(ctx context.Context, tutorID string, req models.SlotRequest) (*models.AvailabilitySlot, error)
	UpdateSlot(ctx context.Context, tutorID, slotID string, upd models.SlotUpdate) (*models.AvailabilitySlot, error)
	DeleteSlot(ctx context.Context, tutorID, slotID string) error
	ListSlots(ctx context.Context, tutorID string) ([]models.AvailabilitySlot, error)
	ReplaceSlots(ctx context.Context, tutorID string, reqs []models.SlotRequest) ([]models.AvailabilitySlot, error)
}

type DefaultAvailabilityService struct {
	Repo  repository.AvailabilityRepository
	Cache cache.TutorCache
	Now   func() time.Time
}

func NewAvailabilityService(repo repository.AvailabilityRepository, tutorCache cache.TutorCache) *DefaultAvailabilityService {
	if tutorCache == nil {
		tutorCache = cache.NopTutorCache{}
	}
	return &DefaultAvailabilityService{Repo: repo, Cache: tutorCache, Now: time.Now}
}
