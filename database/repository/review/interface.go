package reviewRepo

import (
	"context"

	"skillbridge/models"
)

// ReviewRepository stores at most one review per booking.
type ReviewRepository interface {
	// Create returns database.ErrDuplicate when the booking already has a review.
	Create(ctx context.Context, review *models.Review) error
	ListByTutor(ctx context.Context, tutorID string) ([]models.Review, error)
	// Summary aggregates the mean rating and review count for a tutor.
	Summary(ctx context.Context, tutorID string) (models.RatingSummary, error)
}
