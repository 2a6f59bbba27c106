package bookingRepo

import (
	"context"
	"time"

	"skillbridge/models"
)

// BookingRepository persists bookings and guards a tutor's time against double booking.
type BookingRepository interface {
	// CreateExclusive inserts booking unless the tutor already holds an active
	// booking overlapping [ScheduledAt, EndsAt). Overlaps and lost races return
	// database.ErrConflict or database.ErrDuplicate; an unknown tutor returns
	// database.ErrNotFound.
	CreateExclusive(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// Transition moves the booking to `to` only if its current status is one of
	// `from`. It returns database.ErrNotFound when no booking matched.
	Transition(ctx context.Context, id string, from []models.BookingStatus, to models.BookingStatus, at time.Time) (*models.Booking, error)
	// List returns bookings newest-scheduled first.
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
	// MarkReminderSent flags a confirmed booking once; false means nothing changed.
	MarkReminderSent(ctx context.Context, id string, at time.Time) (bool, error)
}
