package availabilityRepo

import (
	"context"

	"skillbridge/models"
)

type AvailabilityRepository interface {
	Create(ctx context.Context, slot *models.AvailabilitySlot) error
	GetByID(ctx context.Context, id string) (*models.AvailabilitySlot, error)
	Update(ctx context.Context, slot *models.AvailabilitySlot) (*models.AvailabilitySlot, error)
	Delete(ctx context.Context, tutorID, id string) error
	// ListByTutor returns slots ordered by dayOfWeek, then startTime.
	ListByTutor(ctx context.Context, tutorID string) ([]models.AvailabilitySlot, error)
	ListByTutors(ctx context.Context, tutorIDs []string) ([]models.AvailabilitySlot, error)
	// ReplaceForTutor swaps the tutor's whole weekly template atomically.
	ReplaceForTutor(ctx context.Context, tutorID string, slots []models.AvailabilitySlot) error
}
