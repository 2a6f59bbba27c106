package models

import (
	"fmt"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case BookingPending:
		return BookingPending, true
	case BookingConfirmed:
		return BookingConfirmed, true
	case BookingCompleted:
		return BookingCompleted, true
	case BookingCancelled:
		return BookingCancelled, true
	}
	return "", false
}

func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// Active bookings hold the tutor's time.
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingConfirmed
}

type Booking struct {
	ID             string        `bson:"id" json:"id"`
	StudentID      string        `bson:"studentId" json:"studentId"`
	TutorID        string        `bson:"tutorId" json:"tutorId"`
	SlotID         string        `bson:"slotId,omitempty" json:"slotId,omitempty"`
	ScheduledAt    time.Time     `bson:"scheduledAt" json:"scheduledAt"`
	Duration       int           `bson:"duration" json:"duration"`
	EndsAt         time.Time     `bson:"endsAt" json:"endsAt"`
	Status         BookingStatus `bson:"status" json:"status"`
	TotalAmount    float64       `bson:"totalAmount" json:"totalAmount"`
	Notes          string        `bson:"notes,omitempty" json:"notes,omitempty"`
	ActiveSlotKey  string        `bson:"activeSlotKey,omitempty" json:"-"`
	ReminderSentAt *time.Time    `bson:"reminderSentAt,omitempty" json:"reminderSentAt,omitempty"`
	ConfirmedAt    *time.Time    `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
	CompletedAt    *time.Time    `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CancelledAt    *time.Time    `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// ActiveSlotKey identifies a tutor's start instant while a booking is active.
func ActiveSlotKey(tutorID string, scheduledAt time.Time) string {
	return fmt.Sprintf("%s|%s", tutorID, scheduledAt.UTC().Format(time.RFC3339))
}

// MaxSessionMinutes bounds a single booking to one day.
const MaxSessionMinutes = 24 * 60

// CreateBookingRequest is the body of POST /bookings. A client supplied
// totalAmount is accepted for compatibility and ignored.
type CreateBookingRequest struct {
	TutorID     string    `json:"tutorId" binding:"required"`
	SlotID      string    `json:"slotId"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Duration    int       `json:"duration" binding:"lte=1440"`
	TotalAmount *float64  `json:"totalAmount"`
	Notes       string    `json:"notes" binding:"max=2000"`
}

type BookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BookingFilter struct {
	StudentID string
	TutorID   string
	Status    BookingStatus
}
