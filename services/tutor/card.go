package tutor

import (
	"context"
	"errors"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/services/availability"
	"skillbridge/utils"

	"go.uber.org/zap"
)

// GetTutor returns the public card, served from cache when possible.
func (s *DefaultTutorService) GetTutor(ctx context.Context, tutorID string) (*models.TutorCard, error) {
	if card, err := s.Cache.Get(ctx, tutorID); err != nil {
		utils.GetLogger().Warn("tutor cache read failed", zap.String("tutorId", tutorID), zap.Error(err))
	} else if card != nil {
		return card, nil
	}

	card, err := s.assemble(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	if card.Status != models.UserActive {
		return nil, utils.NotFound("tutor %s not found", tutorID)
	}
	if err := s.Cache.Set(ctx, card); err != nil {
		utils.GetLogger().Warn("tutor cache write failed", zap.String("tutorId", tutorID), zap.Error(err))
	}
	return card, nil
}

// GetOwnProfile always reads through to storage.
func (s *DefaultTutorService) GetOwnProfile(ctx context.Context, tutorID string) (*models.TutorCard, error) {
	return s.assemble(ctx, tutorID)
}

func (s *DefaultTutorService) assemble(ctx context.Context, tutorID string) (*models.TutorCard, error) {
	profile, err := s.Tutors.GetByID(ctx, tutorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("tutor %s not found", tutorID)
		}
		return nil, utils.Internal(err, "failed to load tutor profile")
	}
	user, err := s.Users.GetByID(ctx, tutorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("tutor %s not found", tutorID)
		}
		return nil, utils.Internal(err, "failed to load tutor account")
	}
	slots, err := s.Slots.ListByTutor(ctx, tutorID)
	if err != nil {
		return nil, utils.Internal(err, "failed to load availability")
	}
	availability.SortWeekly(slots)

	var category *models.Category
	if profile.CategoryID != "" {
		category, err = s.Categories.GetByID(ctx, profile.CategoryID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, utils.Internal(err, "failed to load category")
		}
	}
	return buildCard(*profile, *user, slots, category), nil
}

func buildCard(profile models.TutorProfile, user models.User, slots []models.AvailabilitySlot, category *models.Category) *models.TutorCard {
	if slots == nil {
		slots = []models.AvailabilitySlot{}
	}
	if profile.Subjects == nil {
		profile.Subjects = []string{}
	}
	return &models.TutorCard{
		ID:           profile.ID,
		Name:         user.Name,
		AvatarURL:    user.AvatarURL,
		Status:       user.Status,
		Profile:      profile,
		Category:     category,
		Availability: slots,
		Rating:       profile.Rating,
		TotalReviews: profile.TotalReviews,
	}
}
