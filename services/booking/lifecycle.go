package booking

import (
	"context"
	"errors"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/utils"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) Confirm(ctx context.Context, actor models.Principal, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, actor, bookingID, models.BookingConfirmed)
}

func (s *DefaultBookingService) Complete(ctx context.Context, actor models.Principal, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, actor, bookingID, models.BookingCompleted)
}

func (s *DefaultBookingService) Cancel(ctx context.Context, actor models.Principal, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, actor, bookingID, models.BookingCancelled)
}

func (s *DefaultBookingService) UpdateStatus(ctx context.Context, actor models.Principal, bookingID, status string) (*models.Booking, error) {
	to, ok := models.ParseBookingStatus(status)
	if !ok {
		return nil, utils.Validation("unknown booking status %q", status)
	}
	return s.transition(ctx, actor, bookingID, to)
}

func (s *DefaultBookingService) transition(ctx context.Context, actor models.Principal, bookingID string, to models.BookingStatus) (*models.Booking, error) {
	current, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	t, ok := transitions[to]
	if !ok {
		return nil, utils.InvalidTransition("cannot move booking from %s to %s", current.Status, to)
	}
	if actor.Role != t.actor || t.owner(current) != actor.UserID {
		return nil, utils.Unauthorized("booking %s cannot be moved to %s by this user", bookingID, to)
	}
	if !CanTransition(current.Status, to) {
		return nil, utils.InvalidTransition("cannot move booking from %s to %s", current.Status, to)
	}

	updated, err := s.Bookings.Transition(ctx, bookingID, t.from, to, s.Now().UTC())
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, utils.Internal(err, "failed to update booking")
		}
		// Lost a race with another transition; report against the state that won.
		latest, loadErr := s.load(ctx, bookingID)
		if loadErr != nil {
			return nil, loadErr
		}
		return nil, utils.InvalidTransition("cannot move booking from %s to %s", latest.Status, to)
	}

	logger := utils.GetLogger().With(zap.String("bookingId", bookingID), zap.String("status", string(to)))
	logger.Info("Booking status changed", zap.String("from", string(current.Status)))

	if to == models.BookingConfirmed && s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(ctx, updated); err != nil {
			logger.Warn("Failed to schedule reminder", zap.Error(err))
		}
	}
	return updated, nil
}

func (s *DefaultBookingService) load(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("booking %s not found", bookingID)
		}
		return nil, utils.Internal(err, "failed to load booking")
	}
	return booking, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, actor models.Principal, bookingID string) (*models.Booking, error) {
	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actor.Is(models.RoleAdmin) || booking.StudentID == actor.UserID || booking.TutorID == actor.UserID {
		return booking, nil
	}
	return nil, utils.Unauthorized("booking %s belongs to other users", bookingID)
}

func (s *DefaultBookingService) ListBookings(ctx context.Context, actor models.Principal, status string) ([]models.Booking, error) {
	var filter models.BookingFilter
	if status != "" {
		parsed, ok := models.ParseBookingStatus(status)
		if !ok {
			return nil, utils.Validation("unknown booking status %q", status)
		}
		filter.Status = parsed
	}
	switch actor.Role {
	case models.RoleStudent:
		filter.StudentID = actor.UserID
	case models.RoleTutor:
		filter.TutorID = actor.UserID
	case models.RoleAdmin:
	default:
		return nil, utils.Unauthorized("unknown role")
	}

	bookings, err := s.Bookings.List(ctx, filter)
	if err != nil {
		return nil, utils.Internal(err, "failed to list bookings")
	}
	return bookings, nil
}
