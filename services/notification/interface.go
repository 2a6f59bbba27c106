package notification

import (
	"context"

	"skillbridge/models"
	"skillbridge/utils"

	"go.uber.org/zap"
)

// NotificationService delivers reminders to booking participants.
type NotificationService interface {
	SendReminder(ctx context.Context, reminder models.Reminder, recipientIDs ...string) error
}

// LogNotificationService writes reminders to the structured log. It is the
// only delivery channel until a push or email provider is configured.
type LogNotificationService struct{}

func NewLogNotificationService() *LogNotificationService {
	return &LogNotificationService{}
}

func (LogNotificationService) SendReminder(ctx context.Context, reminder models.Reminder, recipientIDs ...string) error {
	utils.GetLogger().Info("Reminder",
		zap.String("bookingId", reminder.BookingID),
		zap.Strings("recipients", recipientIDs),
		zap.String("title", reminder.Title),
		zap.String("body", reminder.Body),
		zap.Time("fireDate", reminder.FireDate))
	return nil
}
