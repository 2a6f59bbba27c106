package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/services/notification"
	"skillbridge/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderHandler processes reminder tasks for bookings that are still confirmed.
type ReminderHandler struct {
	Bookings repository.BookingRepository
	Notifier notification.NotificationService
	Now      func() time.Time
}

func NewReminderHandler(bookings repository.BookingRepository, notifier notification.NotificationService) *ReminderHandler {
	return &ReminderHandler{Bookings: bookings, Notifier: notifier, Now: time.Now}
}

func (h *ReminderHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
	}
	logger := utils.GetLogger().With(zap.String("bookingId", p.BookingID))

	booking, err := h.Bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Warn("Reminder for unknown booking dropped")
			return nil
		}
		return err
	}
	if booking.Status != models.BookingConfirmed {
		logger.Info("Reminder skipped", zap.String("status", string(booking.Status)))
		return nil
	}

	now := h.Now().UTC()
	marked, err := h.Bookings.MarkReminderSent(ctx, booking.ID, now)
	if err != nil {
		return err
	}
	if !marked {
		return nil
	}

	reminder := models.Reminder{
		BookingID: booking.ID,
		Title:     "Upcoming session",
		Body:      fmt.Sprintf("Your %d-minute session starts at %s", booking.Duration, booking.ScheduledAt.Format(time.RFC1123)),
		FireDate:  now,
	}
	return h.Notifier.SendReminder(ctx, reminder, booking.StudentID, booking.TutorID)
}
