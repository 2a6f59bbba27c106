package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/services/cache"
	"skillbridge/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ReviewService gates reviews to one per completed booking and keeps tutor ratings current.
type ReviewService interface {
	SubmitReview(ctx context.Context, actor models.Principal, req models.ReviewRequest) (*models.Review, error)
	ListReviews(ctx context.Context, tutorID string) ([]models.Review, error)
	// RecomputeRating rebuilds a tutor's rating and review count from all reviews.
	RecomputeRating(ctx context.Context, tutorID string) (models.RatingSummary, error)
}

type DefaultReviewService struct {
	Reviews  repository.ReviewRepository
	Bookings repository.BookingRepository
	Tutors   repository.TutorRepository
	Cache    cache.TutorCache
	Now      func() time.Time
}

func NewReviewService(
	reviews repository.ReviewRepository,
	bookings repository.BookingRepository,
	tutors repository.TutorRepository,
	tutorCache cache.TutorCache,
) *DefaultReviewService {
	if tutorCache == nil {
		tutorCache = cache.NopTutorCache{}
	}
	return &DefaultReviewService{
		Reviews:  reviews,
		Bookings: bookings,
		Tutors:   tutors,
		Cache:    tutorCache,
		Now:      time.Now,
	}
}

func (s *DefaultReviewService) SubmitReview(ctx context.Context, actor models.Principal, req models.ReviewRequest) (*models.Review, error) {
	if req.Rating < MinRating || req.Rating > MaxRating {
		return nil, utils.Validation("rating must be between %d and %d", MinRating, MaxRating)
	}

	booking, err := s.Bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("booking %s not found", req.BookingID)
		}
		return nil, utils.Internal(err, "failed to load booking")
	}
	if booking.StudentID != actor.UserID {
		return nil, utils.Unauthorized("only the student of booking %s can review it", booking.ID)
	}
	if booking.Status != models.BookingCompleted {
		return nil, utils.PreconditionFailed("booking %s is %s; only completed bookings can be reviewed", booking.ID, booking.Status)
	}

	review := &models.Review{
		ID:        uuid.New().String(),
		BookingID: booking.ID,
		StudentID: booking.StudentID,
		TutorID:   booking.TutorID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
		CreatedAt: s.Now().UTC(),
	}
	// The unique index on bookingId decides concurrent submissions.
	if err := s.Reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.Conflict("booking %s has already been reviewed", booking.ID)
		}
		return nil, utils.Internal(err, "failed to save review")
	}

	if _, err := s.RecomputeRating(ctx, booking.TutorID); err != nil {
		// The review is stored; the next recompute for this tutor repairs the aggregate.
		utils.GetLogger().Error("Rating recompute failed",
			zap.String("tutorId", booking.TutorID), zap.String("reviewId", review.ID), zap.Error(err))
	}
	return review, nil
}

func (s *DefaultReviewService) RecomputeRating(ctx context.Context, tutorID string) (models.RatingSummary, error) {
	summary, err := s.Reviews.Summary(ctx, tutorID)
	if err != nil {
		return models.RatingSummary{}, err
	}
	applied, err := s.Tutors.UpdateRating(ctx, tutorID, summary)
	if err != nil {
		return models.RatingSummary{}, err
	}
	if !applied {
		utils.GetLogger().Debug("Skipped stale rating write", zap.String("tutorId", tutorID), zap.Int("count", summary.Count))
	}
	if err := s.Cache.Invalidate(ctx, tutorID); err != nil {
		utils.GetLogger().Warn("tutor cache invalidation failed", zap.String("tutorId", tutorID), zap.Error(err))
	}
	return summary, nil
}

func (s *DefaultReviewService) ListReviews(ctx context.Context, tutorID string) ([]models.Review, error) {
	reviews, err := s.Reviews.ListByTutor(ctx, tutorID)
	if err != nil {
		return nil, utils.Internal(err, "failed to load reviews")
	}
	return reviews, nil
}
