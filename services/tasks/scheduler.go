package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillbridge/models"
	"skillbridge/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer is the subset of *asynq.Client used for scheduling.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqReminderScheduler enqueues a reminder leadTime before each confirmed session.
type AsynqReminderScheduler struct {
	Client   Enqueuer
	LeadTime time.Duration
	Now      func() time.Time
}

func NewReminderScheduler(client Enqueuer, leadTime time.Duration) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{Client: client, LeadTime: leadTime, Now: time.Now}
}

func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, booking *models.Booking) error {
	fireAt := booking.ScheduledAt.Add(-s.LeadTime)
	if !fireAt.After(s.Now()) {
		utils.GetLogger().Debug("Reminder window already passed", zap.String("bookingId", booking.ID))
		return nil
	}

	task, opts, err := NewReminderTask(models.ReminderPayload{
		BookingID:   booking.ID,
		StudentID:   booking.StudentID,
		TutorID:     booking.TutorID,
		ScheduledAt: booking.ScheduledAt,
	}, fireAt)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}

	info, err := s.Client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	utils.GetLogger().Info("Reminder scheduled",
		zap.String("bookingId", booking.ID), zap.String("taskId", info.ID), zap.Time("fireAt", fireAt))
	return nil
}
