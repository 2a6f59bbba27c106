package booking

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// pastGrace tolerates clock skew between client and server.
const pastGrace = time.Minute

// TotalAmount prices a session at hourlyRate pro rata, rounded to cents.
func TotalAmount(hourlyRate float64, durationMinutes int) float64 {
	return math.Round(hourlyRate*float64(durationMinutes)/60*100) / 100
}

func (s *DefaultBookingService) CreateBooking(ctx context.Context, actor models.Principal, req models.CreateBookingRequest) (*models.Booking, error) {
	if !actor.Is(models.RoleStudent) {
		return nil, utils.Unauthorized("only students can create bookings")
	}
	tutorID := strings.TrimSpace(req.TutorID)
	if tutorID == "" {
		return nil, utils.Validation("tutorId is required")
	}
	if req.Duration <= 0 {
		return nil, utils.Validation("duration must be greater than 0 minutes")
	}
	if req.Duration > models.MaxSessionMinutes {
		return nil, utils.Validation("duration must be at most %d minutes", models.MaxSessionMinutes)
	}
	if req.ScheduledAt.IsZero() {
		return nil, utils.Validation("scheduledAt is required")
	}
	now := s.Now().UTC()
	scheduledAt := req.ScheduledAt.UTC().Truncate(time.Second)
	if scheduledAt.Before(now.Add(-pastGrace)) {
		return nil, utils.Validation("scheduledAt cannot be in the past")
	}

	tutor, err := s.Tutors.GetByID(ctx, tutorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("tutor %s not found", tutorID)
		}
		return nil, utils.Internal(err, "failed to load tutor")
	}

	slotID := strings.TrimSpace(req.SlotID)
	if slotID != "" {
		slot, err := s.Slots.GetByID(ctx, slotID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, utils.NotFound("slot %s not found", slotID)
			}
			return nil, utils.Internal(err, "failed to load slot")
		}
		if slot.TutorID != tutor.ID {
			return nil, utils.Validation("slot %s does not belong to tutor %s", slotID, tutor.ID)
		}
		if !slot.IsAvailable {
			return nil, utils.PreconditionFailed("slot %s is not available", slotID)
		}
	} else if !tutor.IsAvailable {
		return nil, utils.PreconditionFailed("tutor is not accepting bookings")
	}

	booking := &models.Booking{
		ID:          uuid.New().String(),
		StudentID:   actor.UserID,
		TutorID:     tutor.ID,
		SlotID:      slotID,
		ScheduledAt: scheduledAt,
		Duration:    req.Duration,
		EndsAt:      scheduledAt.Add(time.Duration(req.Duration) * time.Minute),
		Status:      models.BookingPending,
		TotalAmount: TotalAmount(tutor.HourlyRate, req.Duration),
		Notes:       strings.TrimSpace(req.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Bookings.CreateExclusive(ctx, booking); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, utils.NotFound("tutor %s not found", tutor.ID)
		case errors.Is(err, repository.ErrConflict), errors.Is(err, repository.ErrDuplicate):
			return nil, utils.Conflict("tutor already has a booking overlapping %s", scheduledAt.Format(time.RFC3339))
		}
		return nil, utils.Internal(err, "failed to create booking")
	}

	utils.GetLogger().Info("Booking created",
		zap.String("bookingId", booking.ID),
		zap.String("tutorId", booking.TutorID),
		zap.String("studentId", booking.StudentID),
		zap.Time("scheduledAt", booking.ScheduledAt))
	return booking, nil
}
