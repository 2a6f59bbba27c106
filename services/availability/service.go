package availability

import (
	"context"
	"errors"
	"sort"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultAvailabilityService) AddSlot(ctx context.Context, tutorID string, req models.SlotRequest) (*models.AvailabilitySlot, error) {
	start, end, err := normalizeWindow(req.DayOfWeek, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	slot := models.AvailabilitySlot{
		ID:          uuid.New().String(),
		TutorID:     tutorID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
	}

	existing, err := s.Repo.ListByTutor(ctx, tutorID)
	if err != nil {
		return nil, utils.Internal(err, "failed to load slots")
	}
	if other := firstOverlap(slot, existing); other != nil {
		return nil, utils.Conflict("slot overlaps %s %s-%s", other.DayOfWeek, other.StartTime, other.EndTime)
	}

	if err := s.Repo.Create(ctx, &slot); err != nil {
		return nil, utils.Internal(err, "failed to create slot")
	}
	s.invalidate(ctx, tutorID)
	return &slot, nil
}

func (s *DefaultAvailabilityService) UpdateSlot(ctx context.Context, tutorID, slotID string, upd models.SlotUpdate) (*models.AvailabilitySlot, error) {
	slot, err := s.ownedSlot(ctx, tutorID, slotID)
	if err != nil {
		return nil, err
	}

	merged := *slot
	if upd.DayOfWeek != nil {
		merged.DayOfWeek = *upd.DayOfWeek
	}
	if upd.StartTime != nil {
		merged.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		merged.EndTime = *upd.EndTime
	}
	if upd.IsAvailable != nil {
		merged.IsAvailable = *upd.IsAvailable
	}
	if merged.StartTime, merged.EndTime, err = normalizeWindow(merged.DayOfWeek, merged.StartTime, merged.EndTime); err != nil {
		return nil, err
	}

	existing, err := s.Repo.ListByTutor(ctx, tutorID)
	if err != nil {
		return nil, utils.Internal(err, "failed to load slots")
	}
	if other := firstOverlap(merged, existing); other != nil {
		return nil, utils.Conflict("slot overlaps %s %s-%s", other.DayOfWeek, other.StartTime, other.EndTime)
	}

	updated, err := s.Repo.Update(ctx, &merged)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("slot %s not found", slotID)
		}
		return nil, utils.Internal(err, "failed to update slot")
	}
	s.invalidate(ctx, tutorID)
	return updated, nil
}

// DeleteSlot leaves bookings that reference the slot untouched.
func (s *DefaultAvailabilityService) DeleteSlot(ctx context.Context, tutorID, slotID string) error {
	if _, err := s.ownedSlot(ctx, tutorID, slotID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, tutorID, slotID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound("slot %s not found", slotID)
		}
		return utils.Internal(err, "failed to delete slot")
	}
	s.invalidate(ctx, tutorID)
	return nil
}

func (s *DefaultAvailabilityService) ListSlots(ctx context.Context, tutorID string) ([]models.AvailabilitySlot, error) {
	slots, err := s.Repo.ListByTutor(ctx, tutorID)
	if err != nil {
		return nil, utils.Internal(err, "failed to load slots")
	}
	SortWeekly(slots)
	return slots, nil
}

func (s *DefaultAvailabilityService) ReplaceSlots(ctx context.Context, tutorID string, reqs []models.SlotRequest) ([]models.AvailabilitySlot, error) {
	slots := make([]models.AvailabilitySlot, 0, len(reqs))
	for i, req := range reqs {
		start, end, err := normalizeWindow(req.DayOfWeek, req.StartTime, req.EndTime)
		if err != nil {
			var appErr *utils.AppError
			if errors.As(err, &appErr) {
				return nil, utils.Validation("availabilitySlots[%d]: %s", i, appErr.Message)
			}
			return nil, err
		}
		slot := models.AvailabilitySlot{
			ID:          uuid.New().String(),
			TutorID:     tutorID,
			DayOfWeek:   req.DayOfWeek,
			StartTime:   start,
			EndTime:     end,
			IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
		}
		if other := firstOverlap(slot, slots); other != nil {
			return nil, utils.Validation("availabilitySlots[%d] overlaps %s %s-%s", i, other.DayOfWeek, other.StartTime, other.EndTime)
		}
		slots = append(slots, slot)
	}

	if err := s.Repo.ReplaceForTutor(ctx, tutorID, slots); err != nil {
		return nil, utils.Internal(err, "failed to replace slots")
	}
	s.invalidate(ctx, tutorID)
	SortWeekly(slots)
	return slots, nil
}

func (s *DefaultAvailabilityService) ownedSlot(ctx context.Context, tutorID, slotID string) (*models.AvailabilitySlot, error) {
	slot, err := s.Repo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("slot %s not found", slotID)
		}
		return nil, utils.Internal(err, "failed to load slot")
	}
	if slot.TutorID != tutorID {
		return nil, utils.Unauthorized("slot %s belongs to another tutor", slotID)
	}
	return slot, nil
}

func (s *DefaultAvailabilityService) invalidate(ctx context.Context, tutorID string) {
	if err := s.Cache.Invalidate(ctx, tutorID); err != nil {
		utils.GetLogger().Warn("tutor cache invalidation failed", zap.String("tutorId", tutorID), zap.Error(err))
	}
}

// SortWeekly orders slots by dayOfWeek, then startTime.
func SortWeekly(slots []models.AvailabilitySlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].DayOfWeek != slots[j].DayOfWeek {
			return slots[i].DayOfWeek < slots[j].DayOfWeek
		}
		return slots[i].StartTime < slots[j].StartTime
	})
}
