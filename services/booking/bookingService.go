package booking

import (
	"context"
	"time"

	"skillbridge/database/repository"
	"skillbridge/models"
)

// BookingService owns the lifecycle of bookings.
type BookingService interface {
	CreateBooking(ctx context.Context, actor models.Principal, req models.CreateBookingRequest) (*models.Booking, error)
	Confirm(ctx context.Context, actor models.Principal, bookingID string) (*models.Booking, error)
	Complete(ctx context.Context, actor models.Principal, bookingID string) (*models.Booking, error)
	Cancel(ctx context.Context, actor models.Principal, bookingID string) (*models.Booking, error)
	// UpdateStatus dispatches to the transition named by status.
	UpdateStatus(ctx context.Context, actor models.Principal, bookingID, status string) (*models.Booking, error)
	GetBooking(ctx context.Context, actor models.Principal, bookingID string) (*models.Booking, error)
	ListBookings(ctx context.Context, actor models.Principal, status string) ([]models.Booking, error)
}

// ReminderScheduler is notified when a booking is confirmed.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, booking *models.Booking) error
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Bookings  repository.BookingRepository
	Tutors    repository.TutorRepository
	Slots     repository.AvailabilityRepository
	Reminders ReminderScheduler
	Now       func() time.Time
}

func NewBookingService(
	bookings repository.BookingRepository,
	tutors repository.TutorRepository,
	slots repository.AvailabilityRepository,
	reminders ReminderScheduler,
) *DefaultBookingService {
	return &DefaultBookingService{
		Bookings:  bookings,
		Tutors:    tutors,
		Slots:     slots,
		Reminders: reminders,
		Now:       time.Now,
	}
}
